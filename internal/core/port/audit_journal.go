package port

import (
	"context"
	"joytop-admin-service/internal/core/domain"
)

// AuditJournalPort - чтение журнала мутаций.
type AuditJournalPort interface {
	FindPaginated(ctx context.Context, limit, offset int) (*domain.AuditPage, error)
}
