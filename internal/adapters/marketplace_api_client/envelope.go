package marketplace_api_client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

// Бэкенд отдает списки в трех разных конвертах:
//  1. {"results": [...], "count": N, "next": ..., "previous": ...}
//  2. [...]
//  3. {"status": true, "data": [...]}
// normalizeList сводит их к domain.ListResult. Любая другая форма дает пустой
// список с предупреждением в логе, а не ошибку.
func normalizeList[T any](body []byte, logger port.LoggerPort) *domain.ListResult[T] {
	trimmed := bytes.TrimSpace(body)

	switch {
	case isJSONObject(trimmed):
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return malformed[T](logger, err)
		}

		if raw, ok := envelope["results"]; ok && isJSONArray(raw) {
			var results []T
			if err := json.Unmarshal(raw, &results); err != nil {
				return malformed[T](logger, err)
			}
			result := &domain.ListResult[T]{
				Results:  nonNil(results),
				Count:    len(results),
				Next:     optionalString(envelope["next"]),
				Previous: optionalString(envelope["previous"]),
			}
			if count, ok := optionalInt(envelope["count"]); ok {
				result.Count = count
			}
			return result
		}

		if isTrue(envelope["status"]) {
			if raw, ok := envelope["data"]; ok && isJSONArray(raw) {
				var data []T
				if err := json.Unmarshal(raw, &data); err != nil {
					return malformed[T](logger, err)
				}
				return &domain.ListResult[T]{Results: nonNil(data), Count: len(data)}
			}
		}

	case isJSONArray(trimmed):
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return malformed[T](logger, err)
		}
		return &domain.ListResult[T]{Results: nonNil(items), Count: len(items)}
	}

	return malformed[T](logger, nil)
}

// decodeEntity разбирает одиночную запись: как есть или в обертке {"status", "data"}.
func decodeEntity[T any](body []byte) (T, error) {
	var entity T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return entity, fmt.Errorf("empty entity body: %w", domain.ErrMalformedResponse)
	}

	if isJSONObject(trimmed) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			raw, hasData := envelope["data"]
			if _, hasStatus := envelope["status"]; hasStatus && hasData && isBool(envelope["status"]) && isJSONObject(raw) {
				trimmed = raw
			}
		}
	}

	if err := json.Unmarshal(trimmed, &entity); err != nil {
		return entity, fmt.Errorf("failed to decode entity: %w", err)
	}
	return entity, nil
}

func malformed[T any](logger port.LoggerPort, cause error) *domain.ListResult[T] {
	fields := port.Fields{"reason": domain.ErrMalformedResponse.Error()}
	if cause != nil {
		fields["cause"] = cause.Error()
	}
	logger.Warn("Unrecognized list envelope, returning empty result", fields)
	return domain.EmptyListResult[T]()
}

func isJSONObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isJSONArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isTrue(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("true"))
}

func isBool(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return bytes.Equal(raw, []byte("true")) || bytes.Equal(raw, []byte("false"))
}

func optionalString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

func optionalInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n *int
	if err := json.Unmarshal(raw, &n); err != nil || n == nil {
		return 0, false
	}
	return *n, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
