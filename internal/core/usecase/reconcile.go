package usecase

import "joytop-admin-service/internal/core/domain"

// Сверка списка после мутаций. Функции не трогают исходный слайс:
// его могли уже отдать наружу в снимке.

func prependItem[T domain.Entity](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// replaceByID ставит item на место записи с id. Ответ бэкенда может прийти
// без id, поэтому ключ берется из запроса, а не из item.
func replaceByID[T domain.Entity](items []T, id int64, item T) ([]T, bool) {
	for i := range items {
		if items[i].EntityID() != id {
			continue
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = item
		return out, true
	}
	return items, false
}

func removeByID[T domain.Entity](items []T, id int64) ([]T, bool) {
	out := make([]T, 0, len(items))
	removed := false
	for _, it := range items {
		if it.EntityID() == id {
			removed = true
			continue
		}
		out = append(out, it)
	}
	if !removed {
		return items, false
	}
	return out, true
}
