package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"joytop-admin-service/internal/core/domain"
)

type listCall struct {
	filters  domain.Filters
	page     int
	pageSize int
}

// fakeDistrictAPI - бэкенд в памяти с настоящей пагинацией.
type fakeDistrictAPI struct {
	mu        sync.Mutex
	data      []domain.District
	nextID    int64
	calls     []listCall
	mutations int

	listErr   error
	createErr error
	updateErr error

	// бэкенд, который отвечает на update/patch записью без id
	omitIDOnUpdate bool

	// вызывается до ответа на List, позволяет притормозить конкретный запрос
	onList func(call listCall)
}

func newFakeDistrictAPI(n int) *fakeDistrictAPI {
	api := &fakeDistrictAPI{nextID: int64(n) + 1}
	for i := 1; i <= n; i++ {
		api.data = append(api.data, domain.District{ID: int64(i), Name: "district"})
	}
	return api
}

func (f *fakeDistrictAPI) Name() string { return "districts" }

func (f *fakeDistrictAPI) List(ctx context.Context, filters domain.Filters, page, pageSize int) (*domain.ListResult[domain.District], error) {
	call := listCall{filters: filters.Clone(), page: page, pageSize: pageSize}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	hook := f.onList
	listErr := f.listErr
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if listErr != nil {
		return nil, listErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]domain.District, 0, len(f.data))
	search, _ := filters["search"].(string)
	for _, d := range f.data {
		if search != "" && !strings.Contains(d.Name, search) {
			continue
		}
		matched = append(matched, d)
	}

	result := &domain.ListResult[domain.District]{Results: []domain.District{}, Count: len(matched)}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return result, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	result.Results = append(result.Results, matched[start:end]...)
	return result, nil
}

func (f *fakeDistrictAPI) Get(ctx context.Context, id int64) (domain.District, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.data {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.District{}, &domain.RequestError{StatusCode: 404, Message: "Not found."}
}

func (f *fakeDistrictAPI) Create(ctx context.Context, payload domain.Payload) (domain.District, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	if f.createErr != nil {
		return domain.District{}, f.createErr
	}
	name, _ := payload.Fields["name"].(string)
	d := domain.District{ID: f.nextID, Name: name}
	f.nextID++
	f.data = append([]domain.District{d}, f.data...)
	return d, nil
}

func (f *fakeDistrictAPI) Update(ctx context.Context, id int64, payload domain.Payload) (domain.District, error) {
	return f.modify(id, payload)
}

func (f *fakeDistrictAPI) Patch(ctx context.Context, id int64, partial domain.Payload) (domain.District, error) {
	return f.modify(id, partial)
}

func (f *fakeDistrictAPI) modify(id int64, payload domain.Payload) (domain.District, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	if f.updateErr != nil {
		return domain.District{}, f.updateErr
	}
	for i := range f.data {
		if f.data[i].ID != id {
			continue
		}
		if name, ok := payload.Fields["name"].(string); ok {
			f.data[i].Name = name
		}
		if active, ok := payload.Fields["is_active"].(bool); ok {
			f.data[i].IsActive = active
		}
		if f.omitIDOnUpdate {
			return domain.District{Name: f.data[i].Name, IsActive: f.data[i].IsActive}, nil
		}
		return f.data[i], nil
	}
	return domain.District{}, &domain.RequestError{StatusCode: 404, Message: "Not found."}
}

func (f *fakeDistrictAPI) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	for i := range f.data {
		if f.data[i].ID == id {
			f.data = append(f.data[:i], f.data[i+1:]...)
			return nil
		}
	}
	return &domain.RequestError{StatusCode: 404, Message: "Not found."}
}

func (f *fakeDistrictAPI) lastCall() listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeDistrictAPI) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

type recordingSink struct {
	mu      sync.Mutex
	records []domain.MutationRecord
	err     error
}

func (s *recordingSink) RecordMutation(ctx context.Context, record domain.MutationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return s.err
}

func (s *recordingSink) all() []domain.MutationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MutationRecord(nil), s.records...)
}

type rejectingValidator struct{}

func (rejectingValidator) Validate(resource, operation string, payload domain.Payload) error {
	if _, ok := payload.Fields["name"]; !ok {
		return errors.Join(domain.ErrPayloadInvalid, errors.New("name is required"))
	}
	return nil
}
