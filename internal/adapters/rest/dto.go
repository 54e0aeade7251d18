package rest

import (
	"time"

	"joytop-admin-service/internal/core/domain"
)

// MountViewRequest - тело POST /views
type MountViewRequest struct {
	Resource string         `json:"resource"`
	PageSize int            `json:"page_size,omitempty"`
	Filters  domain.Filters `json:"filters,omitempty"`
}

type ChangePageRequest struct {
	Page *int `json:"page"`
}

type ChangePageSizeRequest struct {
	PageSize *int `json:"page_size"`
}

type PaginationResponse struct {
	Count       int `json:"count"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
}

// ViewStateResponse - состояние смонтированного списка
type ViewStateResponse struct {
	ViewID     string             `json:"view_id"`
	Resource   string             `json:"resource"`
	Status     string             `json:"status"`
	Items      []any              `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
	Filters    domain.Filters     `json:"filters"`
	Error      string             `json:"error,omitempty"`
	Generation uint64             `json:"generation"`
}

// ItemMutationResponse - результат create/update/patch вместе с обновленным списком
type ItemMutationResponse struct {
	Item any               `json:"item,omitempty"`
	View ViewStateResponse `json:"view"`
}

type AuditRecordResponse struct {
	Resource   string         `json:"resource"`
	Operation  string         `json:"operation"`
	EntityID   int64          `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	TraceID    string         `json:"trace_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type AuditPageResponse struct {
	Records    []AuditRecordResponse `json:"records"`
	TotalCount int64                 `json:"total_count"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

func toViewStateResponse(viewID string, state domain.ViewState) ViewStateResponse {
	items := state.Items
	if items == nil {
		items = []any{}
	}
	filters := state.Filters
	if filters == nil {
		filters = domain.Filters{}
	}
	return ViewStateResponse{
		ViewID:   viewID,
		Resource: state.Resource,
		Status:   string(state.Status),
		Items:    items,
		Pagination: PaginationResponse{
			Count:       state.Pagination.Count,
			CurrentPage: state.Pagination.CurrentPage,
			PageSize:    state.Pagination.PageSize,
			TotalPages:  state.Pagination.TotalPages,
		},
		Filters:    filters,
		Error:      state.Error,
		Generation: state.Generation,
	}
}

func toAuditPageResponse(page *domain.AuditPage) AuditPageResponse {
	records := make([]AuditRecordResponse, 0, len(page.Records))
	for _, rec := range page.Records {
		records = append(records, AuditRecordResponse{
			Resource:   rec.Resource,
			Operation:  rec.Operation,
			EntityID:   rec.EntityID,
			Payload:    rec.Payload,
			TraceID:    rec.TraceID,
			OccurredAt: rec.OccurredAt,
		})
	}
	return AuditPageResponse{
		Records:    records,
		TotalCount: page.TotalCount,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
}
