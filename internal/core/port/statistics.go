package port

import (
	"context"
	"joytop-admin-service/internal/core/domain"
)

type StatisticsPort interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
