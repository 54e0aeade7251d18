package usecase

import (
	"context"
	"errors"
	"fmt"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

// MutationNotifier раздает факт мутации всем подключенным приемникам
// (очередь событий, журнал аудита). Ошибка одного приемника не мешает остальным.
type MutationNotifier struct {
	sinks []port.MutationSinkPort
}

var _ port.MutationSinkPort = (*MutationNotifier)(nil)

func NewMutationNotifier(sinks ...port.MutationSinkPort) *MutationNotifier {
	active := make([]port.MutationSinkPort, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &MutationNotifier{sinks: active}
}

func (n *MutationNotifier) RecordMutation(ctx context.Context, record domain.MutationRecord) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MutationNotifier",
		"resource":  record.Resource,
		"operation": record.Operation,
		"entity_id": record.EntityID,
	})

	var errs []error
	for i, sink := range n.sinks {
		if err := sink.RecordMutation(ctx, record); err != nil {
			logger.Error("Mutation sink failed", err, port.Fields{"sink_index": i})
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
