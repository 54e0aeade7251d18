package marketplace_api_client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

// FilterExpander переписывает набор фильтров перед построением запроса
// (например, geohash -> границы координат).
type FilterExpander func(filters domain.Filters) (domain.Filters, error)

// ResourceClient - CRUD-клиент одного ресурса: /<prefix>/<name>/ и /<prefix>/<name>/{id}/.
type ResourceClient[T domain.Entity] struct {
	client    *Client
	name      string
	expanders []FilterExpander
}

var _ port.ResourceAPIPort[domain.District] = (*ResourceClient[domain.District])(nil)

func NewResourceClient[T domain.Entity](client *Client, name string, expanders ...FilterExpander) *ResourceClient[T] {
	return &ResourceClient[T]{
		client:    client,
		name:      name,
		expanders: expanders,
	}
}

func (r *ResourceClient[T]) Name() string { return r.name }

func (r *ResourceClient[T]) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"resource":  r.name,
		"method":    method,
	})
}

// List выполняет GET списка и нормализует конверт ответа.
func (r *ResourceClient[T]) List(ctx context.Context, filters domain.Filters, page, pageSize int) (*domain.ListResult[T], error) {
	clientLogger := r.logger(ctx, "List")

	effective := filters
	for _, expand := range r.expanders {
		var err error
		effective, err = expand(effective)
		if err != nil {
			clientLogger.Warn("Failed to expand filters", port.Fields{"error": err.Error()})
			return nil, fmt.Errorf("failed to expand filters: %w", err)
		}
	}

	url := r.client.resourceURL(r.name) + "?" + buildListQuery(effective, page, pageSize).Encode()
	clientLogger.Debug("Sending list request to marketplace api", port.Fields{"url": url})

	resp, err := r.client.doRequest(ctx, r.name, http.MethodGet, url, nil, "")
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace api", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		reqErr := readRequestError(resp)
		clientLogger.Error("Received error response from marketplace api", reqErr, port.Fields{"status_code": resp.StatusCode})
		return nil, reqErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return nil, fmt.Errorf("failed to read list response: %w", err)
	}

	result := normalizeList[T](body, clientLogger)
	clientLogger.Debug("Successfully received list", port.Fields{
		"items_on_page": len(result.Results),
		"total_count":   result.Count,
	})
	return result, nil
}

// Get возвращает одну запись по id.
func (r *ResourceClient[T]) Get(ctx context.Context, id int64) (T, error) {
	return r.send(ctx, "Get", http.MethodGet, r.client.entityURL(r.name, id), nil)
}

// Create - POST, JSON или multipart в зависимости от наличия файлов.
func (r *ResourceClient[T]) Create(ctx context.Context, payload domain.Payload) (T, error) {
	return r.send(ctx, "Create", http.MethodPost, r.client.resourceURL(r.name), &payload)
}

// Update - PUT, полная замена записи.
func (r *ResourceClient[T]) Update(ctx context.Context, id int64, payload domain.Payload) (T, error) {
	return r.send(ctx, "Update", http.MethodPut, r.client.entityURL(r.name, id), &payload)
}

// Patch - PATCH, частичное обновление.
func (r *ResourceClient[T]) Patch(ctx context.Context, id int64, partial domain.Payload) (T, error) {
	return r.send(ctx, "Patch", http.MethodPatch, r.client.entityURL(r.name, id), &partial)
}

// Delete - DELETE, успешный ответ 2xx с пустым телом. 404 возвращается как RequestError.
func (r *ResourceClient[T]) Delete(ctx context.Context, id int64) error {
	clientLogger := r.logger(ctx, "Delete").WithFields(port.Fields{"entity_id": id})

	resp, err := r.client.doRequest(ctx, r.name, http.MethodDelete, r.client.entityURL(r.name, id), nil, "")
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace api", err, nil)
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		reqErr := readRequestError(resp)
		clientLogger.Error("Received error response from marketplace api", reqErr, port.Fields{"status_code": resp.StatusCode})
		return reqErr
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	clientLogger.Info("Entity deleted", nil)
	return nil
}

func (r *ResourceClient[T]) send(ctx context.Context, method, httpMethod, url string, payload *domain.Payload) (T, error) {
	var zero T
	clientLogger := r.logger(ctx, method)

	var (
		body        io.Reader
		contentType string
	)
	if payload != nil {
		var err error
		body, contentType, err = encodePayload(*payload)
		if err != nil {
			clientLogger.Error("Failed to encode payload", err, nil)
			return zero, err
		}
	}

	clientLogger.Debug("Sending request to marketplace api", port.Fields{"url": url, "content_type": contentType})
	resp, err := r.client.doRequest(ctx, r.name, httpMethod, url, body, contentType)
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace api", err, nil)
		return zero, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		reqErr := readRequestError(resp)
		clientLogger.Error("Received error response from marketplace api", reqErr, port.Fields{"status_code": resp.StatusCode})
		return zero, reqErr
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return zero, fmt.Errorf("failed to read response: %w", err)
	}

	entity, err := decodeEntity[T](respBody)
	if err != nil {
		clientLogger.Error("Failed to decode entity", err, nil)
		return zero, err
	}

	clientLogger.Debug("Successfully received entity", port.Fields{"entity_id": entity.EntityID()})
	return entity, nil
}
