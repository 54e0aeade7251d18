package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"joytop-admin-service/internal/constants"
	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// publisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ResourceEventMessage - тело события об изменении ресурса
type ResourceEventMessage struct {
	Resource   string         `json:"resource"`
	Operation  string         `json:"operation"`
	EntityID   int64          `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// ResourceEventsPublisher публикует факты мутаций в admin_exchange.
type ResourceEventsPublisher struct {
	producer publisher
}

var _ port.MutationSinkPort = (*ResourceEventsPublisher)(nil)

func NewResourceEventsPublisher(producer publisher) (*ResourceEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ResourceEventsPublisher{producer: producer}, nil
}

func (a *ResourceEventsPublisher) RecordMutation(ctx context.Context, record domain.MutationRecord) error {
	routingKey := constants.RoutingKeyForOperation(record.Operation)
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ResourceEventsPublisher",
		"routing_key": routingKey,
		"resource":    record.Resource,
		"entity_id":   record.EntityID,
	})

	if routingKey == "" {
		return fmt.Errorf("rabbitmq adapter: unknown operation %q", record.Operation)
	}

	msg, err := buildEventMessage(record)
	if err != nil {
		adapterLogger.Error("Failed to build event message", err, nil)
		return err
	}

	traceID := record.TraceID
	if traceID == "" {
		traceID = contextkeys.TraceIDFromContext(ctx)
	}
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish resource event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s event for %s/%d: %w",
			record.Operation, record.Resource, record.EntityID, err)
	}

	adapterLogger.Debug("Resource event published", nil)
	return nil
}

func buildEventMessage(record domain.MutationRecord) (amqp.Publishing, error) {
	body, err := json.Marshal(ResourceEventMessage{
		Resource:   record.Resource,
		Operation:  record.Operation,
		EntityID:   record.EntityID,
		Payload:    record.Payload,
		OccurredAt: record.OccurredAt,
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    record.OccurredAt,
		Type:         record.Resource + "." + record.Operation,
		Headers:      amqp.Table{"resource": record.Resource},
	}, nil
}
