package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
	"joytop-admin-service/internal/core/usecase"

	"github.com/go-chi/chi/v5"
)

// ViewsHandler - списки панели: монтирование, пагинация, фильтры, мутации.
type ViewsHandler struct {
	registry *usecase.ViewRegistry
}

func NewViewsHandler(registry *usecase.ViewRegistry) *ViewsHandler {
	return &ViewsHandler{registry: registry}
}

// view достает список по {viewID}; при ошибке ответ уже записан
func (h *ViewsHandler) view(w http.ResponseWriter, r *http.Request) (string, usecase.View, bool) {
	viewID := chi.URLParam(r, "viewID")
	view, err := h.registry.Get(viewID)
	if err != nil {
		WriteDomainError(w, err)
		return viewID, nil, false
	}
	return viewID, view, true
}

// MountView обрабатывает POST /views
func (h *ViewsHandler) MountView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req MountViewRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Resource == "" {
		WriteJSONError(w, http.StatusBadRequest, "resource is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":   "MountView",
		"resource":  req.Resource,
		"page_size": req.PageSize,
	})

	viewID, state, err := h.registry.Mount(r.Context(), req.Resource, req.PageSize, req.Filters)
	if err != nil {
		handlerLogger.Warn("Failed to mount view", port.Fields{"error": err.Error()})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toViewStateResponse(viewID, state))
}

// GetView обрабатывает GET /views/{viewID}
func (h *ViewsHandler) GetView(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(viewID, view.Snapshot()))
}

// UnmountView обрабатывает DELETE /views/{viewID}
func (h *ViewsHandler) UnmountView(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Unmount(chi.URLParam(r, "viewID")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Refresh обрабатывает POST /views/{viewID}/refresh
func (h *ViewsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(viewID, view.Refresh(r.Context())))
}

// ChangePage обрабатывает PUT /views/{viewID}/page
func (h *ViewsHandler) ChangePage(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}

	var req ChangePageRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Page == nil {
		WriteJSONError(w, http.StatusBadRequest, "page is required")
		return
	}

	state, err := view.ChangePage(r.Context(), *req.Page)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(viewID, state))
}

// ChangePageSize обрабатывает PUT /views/{viewID}/page-size
func (h *ViewsHandler) ChangePageSize(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}

	var req ChangePageSizeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PageSize == nil {
		WriteJSONError(w, http.StatusBadRequest, "page_size is required")
		return
	}

	state, err := view.ChangePageSize(r.Context(), *req.PageSize)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(viewID, state))
}

// UpdateFilters обрабатывает PATCH /views/{viewID}/filters
func (h *ViewsHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}

	var partial domain.Filters
	if err := decodeJSONBody(r, &partial); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := view.UpdateFilters(r.Context(), partial)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(viewID, state))
}

// ClearFilters обрабатывает DELETE /views/{viewID}/filters
func (h *ViewsHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(viewID, view.ClearFilters(r.Context())))
}

// CreateItem обрабатывает POST /views/{viewID}/items
func (h *ViewsHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}

	payload, cleanup, err := parsePayload(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	created, err := view.Create(r.Context(), payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, ItemMutationResponse{
		Item: created,
		View: toViewStateResponse(viewID, view.Snapshot()),
	})
}

// UpdateItem обрабатывает PUT /views/{viewID}/items/{itemID}
func (h *ViewsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	h.replaceItem(w, r, usecase.View.Update)
}

// PatchItem обрабатывает PATCH /views/{viewID}/items/{itemID}
func (h *ViewsHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	h.replaceItem(w, r, usecase.View.Patch)
}

type replaceFunc func(usecase.View, context.Context, int64, domain.Payload) (any, error)

func (h *ViewsHandler) replaceItem(w http.ResponseWriter, r *http.Request, call replaceFunc) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}

	itemID, err := parseItemID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, cleanup, err := parsePayload(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	item, err := call(view, r.Context(), itemID, payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, ItemMutationResponse{
		Item: item,
		View: toViewStateResponse(viewID, view.Snapshot()),
	})
}

// DeleteItem обрабатывает DELETE /views/{viewID}/items/{itemID}
func (h *ViewsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	viewID, view, ok := h.view(w, r)
	if !ok {
		return
	}

	itemID, err := parseItemID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := view.Delete(r.Context(), itemID); err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, ItemMutationResponse{
		View: toViewStateResponse(viewID, view.Snapshot()),
	})
}

func parseItemID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid item id %q", raw)
	}
	return id, nil
}
