package domain

// Pagination - состояние пагинации одного списка.
// Инвариант: TotalPages == ceil(Count / PageSize).
type Pagination struct {
	Count       int
	CurrentPage int
	PageSize    int
	TotalPages  int
}

// NewPagination создает состояние для первой страницы.
func NewPagination(pageSize int) (Pagination, error) {
	if pageSize < 1 {
		return Pagination{}, ErrInvalidPageSize
	}
	return Pagination{CurrentPage: 1, PageSize: pageSize}, nil
}

// TotalPagesFor считает количество страниц без float-арифметики.
func TotalPagesFor(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// SetCount фиксирует общее количество записей, пришедшее от бэкенда.
func (p *Pagination) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	p.Count = count
	p.TotalPages = TotalPagesFor(count, p.PageSize)
}

// ChangePage выставляет страницу как есть. Верхняя граница не проверяется:
// страница за пределами TotalPages просто вернет пустой список от бэкенда.
func (p *Pagination) ChangePage(page int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	p.CurrentPage = page
	return nil
}

// ChangePageSize меняет размер страницы и сбрасывает на первую.
func (p *Pagination) ChangePageSize(size int) error {
	if size < 1 {
		return ErrInvalidPageSize
	}
	p.PageSize = size
	p.CurrentPage = 1
	p.TotalPages = TotalPagesFor(p.Count, size)
	return nil
}

func (p *Pagination) ResetPage() {
	p.CurrentPage = 1
}
