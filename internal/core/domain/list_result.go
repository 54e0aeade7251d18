package domain

// ListResult - каноническая форма ответа со списком, к которой сводятся
// все варианты конвертов бэкенда.
type ListResult[T any] struct {
	Results  []T
	Count    int
	Next     *string
	Previous *string
}

// EmptyListResult - безопасный пустой результат.
func EmptyListResult[T any]() *ListResult[T] {
	return &ListResult[T]{Results: []T{}}
}
