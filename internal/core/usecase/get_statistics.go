package usecase

import (
	"context"
	"fmt"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

type GetStatisticsUseCase struct {
	stats port.StatisticsPort
}

func NewGetStatisticsUseCase(stats port.StatisticsPort) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{stats: stats}
}

func (uc *GetStatisticsUseCase) Execute(ctx context.Context) (*domain.Statistics, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetStatistics"})

	stats, err := uc.stats.GetStatistics(ctx)
	if err != nil {
		ucLogger.Error("Failed to get statistics", err, nil)
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	ucLogger.Debug("Statistics received", nil)
	return stats, nil
}
