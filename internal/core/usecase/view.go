package usecase

import (
	"context"

	"joytop-admin-service/internal/core/domain"
)

// View - ListView со стертым типом записи, чтобы реестр и REST-слой
// работали с любым ресурсом одинаково.
type View interface {
	Resource() string
	Snapshot() domain.ViewState
	Refresh(ctx context.Context) domain.ViewState
	ChangePage(ctx context.Context, page int) (domain.ViewState, error)
	ChangePageSize(ctx context.Context, size int) (domain.ViewState, error)
	UpdateFilters(ctx context.Context, partial domain.Filters) (domain.ViewState, error)
	ClearFilters(ctx context.Context) domain.ViewState
	Create(ctx context.Context, payload domain.Payload) (any, error)
	Update(ctx context.Context, id int64, payload domain.Payload) (any, error)
	Patch(ctx context.Context, id int64, partial domain.Payload) (any, error)
	Delete(ctx context.Context, id int64) error
}

type erasedView[T domain.Entity] struct {
	*ListView[T]
}

func (e erasedView[T]) Create(ctx context.Context, payload domain.Payload) (any, error) {
	created, err := e.ListView.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (e erasedView[T]) Update(ctx context.Context, id int64, payload domain.Payload) (any, error) {
	updated, err := e.ListView.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (e erasedView[T]) Patch(ctx context.Context, id int64, partial domain.Payload) (any, error) {
	patched, err := e.ListView.Patch(ctx, id, partial)
	if err != nil {
		return nil, err
	}
	return patched, nil
}

// AsView стирает тип записи.
func AsView[T domain.Entity](v *ListView[T]) View {
	return erasedView[T]{ListView: v}
}
