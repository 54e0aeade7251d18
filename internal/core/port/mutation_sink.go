package port

import (
	"context"
	"joytop-admin-service/internal/core/domain"
)

// MutationSinkPort получает факты успешных мутаций (очередь событий, журнал аудита).
type MutationSinkPort interface {
	RecordMutation(ctx context.Context, record domain.MutationRecord) error
}
