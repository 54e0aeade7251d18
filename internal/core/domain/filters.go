package domain

import (
	"fmt"
	"reflect"
	"sort"
)

// Filters - разреженный набор фильтров списка: ключ -> скалярное значение
// (string, bool, целые, float). Отсутствующий ключ означает "фильтр не задан".
type Filters map[string]any

// IsAbsentFilterValue сообщает, считается ли значение "пустым".
// nil и пустая строка никогда не уходят в запрос.
func IsAbsentFilterValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case *string:
		return val == nil || *val == ""
	}
	return false
}

// Clone возвращает независимую копию набора.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge поверхностно сливает partial в копию текущего набора.
// Пустые значения в partial удаляют ключ.
func (f Filters) Merge(partial Filters) Filters {
	merged := f.Clone()
	for k, v := range partial {
		if IsAbsentFilterValue(v) {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}

// Keys возвращает отсортированный список заданных ключей.
func (f Filters) Keys() []string {
	keys := make([]string, 0, len(f))
	for k, v := range f {
		if IsAbsentFilterValue(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate отклоняет вложенные значения: в query-строку уходят только скаляры.
func (f Filters) Validate() error {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := f[k]
		if v == nil {
			continue
		}
		switch reflect.TypeOf(v).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			return fmt.Errorf("%w: %q must be a scalar, got %T", ErrInvalidFilter, k, v)
		}
	}
	return nil
}
