package port

import (
	"context"
	"joytop-admin-service/internal/core/domain"
)

// ResourceAPIPort - контракт клиента одного CRUD-ресурса маркетплейса.
type ResourceAPIPort[T domain.Entity] interface {
	Name() string
	List(ctx context.Context, filters domain.Filters, page, pageSize int) (*domain.ListResult[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, payload domain.Payload) (T, error)
	Update(ctx context.Context, id int64, payload domain.Payload) (T, error)
	Patch(ctx context.Context, id int64, partial domain.Payload) (T, error)
	Delete(ctx context.Context, id int64) error
}
