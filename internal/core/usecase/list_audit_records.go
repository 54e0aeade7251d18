package usecase

import (
	"context"
	"fmt"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

type ListAuditRecordsUseCase struct {
	journal port.AuditJournalPort // nil, если аудит выключен
}

func NewListAuditRecordsUseCase(journal port.AuditJournalPort) *ListAuditRecordsUseCase {
	return &ListAuditRecordsUseCase{journal: journal}
}

func (uc *ListAuditRecordsUseCase) Execute(ctx context.Context, limit, offset int) (*domain.AuditPage, error) {
	if uc.journal == nil {
		return nil, domain.ErrAuditDisabled
	}

	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}
	if offset < 0 {
		offset = 0
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListAuditRecords",
		"limit":    limit,
		"offset":   offset,
	})

	page, err := uc.journal.FindPaginated(ctx, limit, offset)
	if err != nil {
		ucLogger.Error("Failed to read audit journal", err, nil)
		return nil, fmt.Errorf("failed to read audit journal: %w", err)
	}

	ucLogger.Debug("Audit page read", port.Fields{"records": len(page.Records), "total_count": page.TotalCount})
	return page, nil
}
