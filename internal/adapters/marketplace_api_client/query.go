package marketplace_api_client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"joytop-admin-service/internal/core/domain"
)

// buildListQuery собирает query-строку списка. Пустые фильтры не попадают в запрос.
func buildListQuery(filters domain.Filters, page, pageSize int) url.Values {
	q := url.Values{}
	for _, key := range filters.Keys() {
		value, ok := formatScalar(filters[key])
		if !ok {
			continue
		}
		q.Set(key, value)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return q
}

// formatScalar приводит значение фильтра или поля формы к строке.
func formatScalar(v any) (string, bool) {
	if domain.IsAbsentFilterValue(v) {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case *string:
		return *val, true
	case bool:
		return strconv.FormatBool(val), true
	case *bool:
		if val == nil {
			return "", false
		}
		return strconv.FormatBool(*val), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case *int64:
		if val == nil {
			return "", false
		}
		return strconv.FormatInt(*val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case *float64:
		if val == nil {
			return "", false
		}
		return strconv.FormatFloat(*val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}
