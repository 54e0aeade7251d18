package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"

	"github.com/google/uuid"
)

type mountedView struct {
	view       View
	lastAccess time.Time
}

// ViewRegistry хранит смонтированные списки панели по их id.
// Списки, к которым не обращались дольше idleTTL, удаляются.
type ViewRegistry struct {
	catalog *ResourceCatalog
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	views map[string]*mountedView
}

func NewViewRegistry(catalog *ResourceCatalog, idleTTL time.Duration) *ViewRegistry {
	return &ViewRegistry{
		catalog: catalog,
		idleTTL: idleTTL,
		now:     time.Now,
		views:   make(map[string]*mountedView),
	}
}

// Mount создает список ресурса, выполняет первую загрузку и регистрирует его.
func (r *ViewRegistry) Mount(ctx context.Context, resource string, pageSize int, filters domain.Filters) (string, domain.ViewState, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "MountView",
		"resource": resource,
	})

	view, err := r.catalog.NewView(resource, pageSize, filters)
	if err != nil {
		logger.Warn("Failed to create view", port.Fields{"error": err.Error()})
		return "", domain.ViewState{}, err
	}

	viewID := uuid.NewString()
	r.mu.Lock()
	r.views[viewID] = &mountedView{view: view, lastAccess: r.now()}
	r.mu.Unlock()

	state := view.Refresh(ctx)
	logger.Info("View mounted", port.Fields{"view_id": viewID, "status": state.Status})
	return viewID, state, nil
}

// Get возвращает список и продлевает ему жизнь.
func (r *ViewRegistry) Get(viewID string) (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mv, ok := r.views[viewID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrViewNotFound, viewID)
	}
	mv.lastAccess = r.now()
	return mv.view, nil
}

// Unmount удаляет список. Ответы загрузок, которые еще в полете, просто некуда будет применить.
func (r *ViewRegistry) Unmount(viewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[viewID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrViewNotFound, viewID)
	}
	delete(r.views, viewID)
	return nil
}

func (r *ViewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// EvictIdle удаляет списки, простаивающие дольше idleTTL, и возвращает их количество.
func (r *ViewRegistry) EvictIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, mv := range r.views {
		if mv.lastAccess.Before(deadline) {
			delete(r.views, id)
			evicted++
		}
	}
	return evicted
}

// Run периодически чистит простаивающие списки до отмены ctx.
func (r *ViewRegistry) Run(ctx context.Context) {
	if r.idleTTL <= 0 {
		return
	}
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "ViewRegistryJanitor"})

	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Janitor started", port.Fields{"idle_ttl": r.idleTTL.String()})
	for {
		select {
		case <-ctx.Done():
			logger.Info("Janitor stopped", nil)
			return
		case <-ticker.C:
			if n := r.EvictIdle(); n > 0 {
				logger.Info("Evicted idle views", port.Fields{"evicted": n, "remaining": r.Len()})
			}
		}
	}
}
