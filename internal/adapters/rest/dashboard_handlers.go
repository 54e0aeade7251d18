package rest

import (
	"net/http"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/port"
	"joytop-admin-service/internal/core/usecase"
)

// DashboardHandler - главная страница панели: статистика и журнал действий
type DashboardHandler struct {
	getStatisticsUC *usecase.GetStatisticsUseCase
	listAuditUC     *usecase.ListAuditRecordsUseCase
}

func NewDashboardHandler(getStatisticsUC *usecase.GetStatisticsUseCase, listAuditUC *usecase.ListAuditRecordsUseCase) *DashboardHandler {
	return &DashboardHandler{
		getStatisticsUC: getStatisticsUC,
		listAuditUC:     listAuditUC,
	}
}

// GetStatistics обрабатывает GET /statistics
func (h *DashboardHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.getStatisticsUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

// ListAuditRecords обрабатывает GET /audit?limit=&offset=
func (h *DashboardHandler) ListAuditRecords(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	limit, err := GetLimitOrDefault(r, 20)
	if err != nil || limit < 1 {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}
	offset, err := GetOffsetOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'offset' parameter")
		return
	}

	page, err := h.listAuditUC.Execute(r.Context(), limit, offset)
	if err != nil {
		logger.WithFields(port.Fields{"handler": "ListAuditRecords"}).Warn("Failed to read audit journal", port.Fields{"error": err.Error()})
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toAuditPageResponse(page))
}
