package usecase

import (
	"fmt"
	"sort"
	"sync"

	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

// ViewFactory создает новый смонтированный список ресурса.
type ViewFactory func(opts ListViewOptions) (View, error)

// ResourceCatalog - какие ресурсы можно монтировать и как.
type ResourceCatalog struct {
	mu              sync.RWMutex
	factories       map[string]ViewFactory
	defaultPageSize int
	validator       port.PayloadValidatorPort
	sink            port.MutationSinkPort
}

func NewResourceCatalog(defaultPageSize int, validator port.PayloadValidatorPort, sink port.MutationSinkPort) *ResourceCatalog {
	return &ResourceCatalog{
		factories:       make(map[string]ViewFactory),
		defaultPageSize: defaultPageSize,
		validator:       validator,
		sink:            sink,
	}
}

// Register добавляет ресурс в каталог под именем api.Name().
func Register[T domain.Entity](c *ResourceCatalog, api port.ResourceAPIPort[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[api.Name()] = func(opts ListViewOptions) (View, error) {
		view, err := NewListView[T](api, opts)
		if err != nil {
			return nil, err
		}
		return AsView(view), nil
	}
}

// NewView создает список ресурса. pageSize == 0 означает размер по умолчанию.
func (c *ResourceCatalog) NewView(resource string, pageSize int, filters domain.Filters) (View, error) {
	c.mu.RLock()
	factory, ok := c.factories[resource]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResource, resource)
	}

	if pageSize == 0 {
		pageSize = c.defaultPageSize
	}

	return factory(ListViewOptions{
		PageSize:  pageSize,
		Filters:   filters,
		Validator: c.validator,
		Sink:      c.sink,
	})
}

// Resources возвращает отсортированные имена зарегистрированных ресурсов.
func (c *ResourceCatalog) Resources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
