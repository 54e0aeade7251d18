package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

// ListViewOptions - параметры монтирования списка.
type ListViewOptions struct {
	PageSize  int
	Filters   domain.Filters
	Validator port.PayloadValidatorPort // может быть nil
	Sink      port.MutationSinkPort     // может быть nil
}

// ListView - смонтированный список одного ресурса: фильтры, пагинация,
// текущая страница записей и состояние загрузки.
//
// Каждая загрузка получает номер поколения. Ответ, пришедший после того,
// как была запущена более новая загрузка, отбрасывается. Сетевые вызовы
// выполняются вне мьютекса.
type ListView[T domain.Entity] struct {
	api       port.ResourceAPIPort[T]
	validator port.PayloadValidatorPort
	sink      port.MutationSinkPort
	now       func() time.Time

	mu         sync.Mutex
	status     domain.ViewStatus
	items      []T
	pagination domain.Pagination
	filters    domain.Filters
	errMsg     string
	generation uint64
}

func NewListView[T domain.Entity](api port.ResourceAPIPort[T], opts ListViewOptions) (*ListView[T], error) {
	pagination, err := domain.NewPagination(opts.PageSize)
	if err != nil {
		return nil, err
	}

	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}
	filters := domain.Filters{}.Merge(opts.Filters)

	return &ListView[T]{
		api:        api,
		validator:  opts.Validator,
		sink:       opts.Sink,
		now:        time.Now,
		status:     domain.ViewStatusIdle,
		items:      []T{},
		pagination: pagination,
		filters:    filters,
	}, nil
}

func (v *ListView[T]) Resource() string { return v.api.Name() }

func (v *ListView[T]) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListView",
		"resource": v.api.Name(),
		"method":   method,
	})
}

// Snapshot возвращает текущее состояние без похода в сеть.
func (v *ListView[T]) Snapshot() domain.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Items возвращает записи текущей страницы.
func (v *ListView[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

func (v *ListView[T]) snapshotLocked() domain.ViewState {
	items := make([]any, 0, len(v.items))
	for _, it := range v.items {
		items = append(items, it)
	}
	return domain.ViewState{
		Resource:   v.api.Name(),
		Status:     v.status,
		Items:      items,
		Pagination: v.pagination,
		Filters:    v.filters.Clone(),
		Error:      v.errMsg,
		Generation: v.generation,
	}
}

// Refresh перезагружает текущую страницу с текущими фильтрами.
func (v *ListView[T]) Refresh(ctx context.Context) domain.ViewState {
	return v.fetch(ctx)
}

// ChangePage переходит на страницу page и загружает ее. Страница за пределами
// TotalPages допустима.
func (v *ListView[T]) ChangePage(ctx context.Context, page int) (domain.ViewState, error) {
	v.mu.Lock()
	err := v.pagination.ChangePage(page)
	v.mu.Unlock()
	if err != nil {
		return v.Snapshot(), err
	}
	return v.fetch(ctx), nil
}

// ChangePageSize меняет размер страницы, сбрасывает на первую и загружает ее.
func (v *ListView[T]) ChangePageSize(ctx context.Context, size int) (domain.ViewState, error) {
	v.mu.Lock()
	err := v.pagination.ChangePageSize(size)
	v.mu.Unlock()
	if err != nil {
		return v.Snapshot(), err
	}
	return v.fetch(ctx), nil
}

// UpdateFilters сливает partial с текущими фильтрами и загружает первую страницу.
// Набор с вложенными значениями отклоняется целиком, состояние не меняется.
func (v *ListView[T]) UpdateFilters(ctx context.Context, partial domain.Filters) (domain.ViewState, error) {
	if err := partial.Validate(); err != nil {
		return v.Snapshot(), err
	}
	v.mu.Lock()
	v.filters = v.filters.Merge(partial)
	v.pagination.ResetPage()
	v.mu.Unlock()
	return v.fetch(ctx), nil
}

// ClearFilters сбрасывает все фильтры и загружает первую страницу.
func (v *ListView[T]) ClearFilters(ctx context.Context) domain.ViewState {
	v.mu.Lock()
	v.filters = domain.Filters{}
	v.pagination.ResetPage()
	v.mu.Unlock()
	return v.fetch(ctx)
}

func (v *ListView[T]) fetch(ctx context.Context) domain.ViewState {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.status = domain.ViewStatusLoading
	filters := v.filters.Clone()
	page, pageSize := v.pagination.CurrentPage, v.pagination.PageSize
	v.mu.Unlock()

	viewLogger := v.logger(ctx, "fetch").WithFields(port.Fields{
		"generation": gen,
		"page":       page,
		"page_size":  pageSize,
	})

	result, err := v.api.List(ctx, filters, page, pageSize)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		viewLogger.Debug("Discarding stale list response", port.Fields{"latest_generation": v.generation})
		return v.snapshotLocked()
	}

	if err != nil {
		viewLogger.Error("Failed to fetch list", err, nil)
		v.status = domain.ViewStatusError
		v.errMsg = err.Error()
		return v.snapshotLocked()
	}

	v.items = result.Results
	if v.items == nil {
		v.items = []T{}
	}
	v.pagination.SetCount(result.Count)
	v.status = domain.ViewStatusSuccess
	v.errMsg = ""

	viewLogger.Debug("List fetched", port.Fields{
		"items_on_page": len(v.items),
		"total_count":   v.pagination.Count,
		"total_pages":   v.pagination.TotalPages,
	})
	return v.snapshotLocked()
}

// Create создает запись и добавляет ее в начало текущей страницы.
func (v *ListView[T]) Create(ctx context.Context, payload domain.Payload) (T, error) {
	var zero T
	viewLogger := v.logger(ctx, "Create")

	if err := v.validate(domain.OpCreate, payload); err != nil {
		viewLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return zero, err
	}

	created, err := v.api.Create(ctx, payload)
	if err != nil {
		viewLogger.Error("Create failed", err, nil)
		return zero, domain.NewMutationError(domain.OpCreate, v.api.Name(), err)
	}

	v.mu.Lock()
	v.items = prependItem(v.items, created)
	v.pagination.SetCount(v.pagination.Count + 1)
	v.mu.Unlock()

	v.notify(ctx, domain.OpCreate, created.EntityID(), payload)
	viewLogger.Info("Entity created", port.Fields{"entity_id": created.EntityID()})
	return created, nil
}

// Update полностью заменяет запись (PUT).
func (v *ListView[T]) Update(ctx context.Context, id int64, payload domain.Payload) (T, error) {
	return v.replace(ctx, domain.OpUpdate, id, payload, v.api.Update)
}

// Patch частично обновляет запись (PATCH).
func (v *ListView[T]) Patch(ctx context.Context, id int64, partial domain.Payload) (T, error) {
	return v.replace(ctx, domain.OpPatch, id, partial, v.api.Patch)
}

func (v *ListView[T]) replace(
	ctx context.Context,
	op string,
	id int64,
	payload domain.Payload,
	call func(context.Context, int64, domain.Payload) (T, error),
) (T, error) {
	var zero T
	viewLogger := v.logger(ctx, op).WithFields(port.Fields{"entity_id": id})

	if err := v.validate(op, payload); err != nil {
		viewLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return zero, err
	}

	updated, err := call(ctx, id, payload)
	if err != nil {
		viewLogger.Error("Mutation failed", err, nil)
		return zero, domain.NewMutationError(op, v.api.Name(), err)
	}

	v.mu.Lock()
	items, found := replaceByID(v.items, id, updated)
	v.items = items
	v.mu.Unlock()

	if !found {
		viewLogger.Debug("Updated entity is not on the current page", nil)
	}
	if got := updated.EntityID(); got != id {
		viewLogger.Warn("Response entity id differs from requested id", port.Fields{"response_entity_id": got})
	}

	v.notify(ctx, op, id, payload)
	viewLogger.Info("Entity updated", nil)
	return updated, nil
}

// Delete удаляет запись. Если записи нет на текущей странице, список не меняется,
// а результат определяет только ответ сервера.
func (v *ListView[T]) Delete(ctx context.Context, id int64) error {
	viewLogger := v.logger(ctx, "Delete").WithFields(port.Fields{"entity_id": id})

	if err := v.api.Delete(ctx, id); err != nil {
		viewLogger.Error("Delete failed", err, nil)
		return domain.NewMutationError(domain.OpDelete, v.api.Name(), err)
	}

	v.mu.Lock()
	items, removed := removeByID(v.items, id)
	v.items = items
	if removed {
		v.pagination.SetCount(v.pagination.Count - 1)
	}
	v.mu.Unlock()

	v.notify(ctx, domain.OpDelete, id, domain.Payload{})
	viewLogger.Info("Entity deleted", port.Fields{"removed_from_page": removed})
	return nil
}

func (v *ListView[T]) validate(op string, payload domain.Payload) error {
	if v.validator == nil {
		return nil
	}
	err := v.validator.Validate(v.api.Name(), op, payload)
	if err == nil {
		return nil
	}
	mutErr := &domain.MutationError{Op: op, Resource: v.api.Name(), Message: err.Error(), Err: err}
	if !errors.Is(err, domain.ErrPayloadInvalid) {
		mutErr.Err = errors.Join(domain.ErrPayloadInvalid, err)
	}
	return mutErr
}

func (v *ListView[T]) notify(ctx context.Context, op string, id int64, payload domain.Payload) {
	if v.sink == nil {
		return
	}

	fields := make(map[string]any, len(payload.Fields)+1)
	for k, val := range payload.Fields {
		fields[k] = val
	}
	if len(payload.Files) > 0 {
		names := make([]string, 0, len(payload.Files))
		for _, f := range payload.Files {
			names = append(names, f.FileName)
		}
		fields["_files"] = names
	}

	record := domain.MutationRecord{
		Resource:   v.api.Name(),
		Operation:  op,
		EntityID:   id,
		Payload:    fields,
		TraceID:    contextkeys.TraceIDFromContext(ctx),
		OccurredAt: v.now().UTC(),
	}
	if err := v.sink.RecordMutation(ctx, record); err != nil {
		v.logger(ctx, "notify").Warn("Mutation sinks reported errors", port.Fields{"error": err.Error()})
	}
}
