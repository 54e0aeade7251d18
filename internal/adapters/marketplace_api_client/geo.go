package marketplace_api_client

import (
	"fmt"
	"strconv"

	"joytop-admin-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

// GeohashFilterKey - фильтр карты: ячейка geohash, выбранная на карте объявлений.
const GeohashFilterKey = "geohash"

// ExpandGeohashFilter заменяет фильтр geohash на границы ячейки
// (min_lat, max_lat, min_lng, max_lng), которые понимает API.
func ExpandGeohashFilter(filters domain.Filters) (domain.Filters, error) {
	raw, ok := filters[GeohashFilterKey]
	if !ok || domain.IsAbsentFilterValue(raw) {
		return filters, nil
	}

	hash, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("geohash filter must be a string, got %T", raw)
	}
	if err := geohash.Validate(hash); err != nil {
		return nil, fmt.Errorf("invalid geohash %q: %w", hash, err)
	}

	box := geohash.BoundingBox(hash)
	expanded := filters.Clone()
	delete(expanded, GeohashFilterKey)
	expanded["min_lat"] = strconv.FormatFloat(box.MinLat, 'f', 6, 64)
	expanded["max_lat"] = strconv.FormatFloat(box.MaxLat, 'f', 6, 64)
	expanded["min_lng"] = strconv.FormatFloat(box.MinLng, 'f', 6, 64)
	expanded["max_lng"] = strconv.FormatFloat(box.MaxLng, 'f', 6, 64)
	return expanded, nil
}
