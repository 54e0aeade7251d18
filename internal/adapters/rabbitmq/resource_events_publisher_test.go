package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	routingKey  string
	msg         amqp.Publishing
	err         error
	hadDeadline bool
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	f.routingKey = routingKey
	f.msg = msg
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func TestResourceEventsPublisher_RecordMutation(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewResourceEventsPublisher(producer)
	require.NoError(t, err)

	occurred := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-42")
	err = adapter.RecordMutation(ctx, domain.MutationRecord{
		Resource:   "tariffs",
		Operation:  domain.OpPatch,
		EntityID:   7,
		Payload:    map[string]any{"price": 120},
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	require.Equal(t, "admin.resource.patch", producer.routingKey)
	require.True(t, producer.hadDeadline)
	require.Equal(t, amqp.Persistent, producer.msg.DeliveryMode)
	require.Equal(t, "trace-42", producer.msg.Headers["x-trace-id"])
	require.Equal(t, "tariffs.patch", producer.msg.Type)

	var event ResourceEventMessage
	require.NoError(t, json.Unmarshal(producer.msg.Body, &event))
	require.Equal(t, "tariffs", event.Resource)
	require.Equal(t, int64(7), event.EntityID)
	require.True(t, occurred.Equal(event.OccurredAt))
}

func TestResourceEventsPublisher_Errors(t *testing.T) {
	_, err := NewResourceEventsPublisher(nil)
	require.Error(t, err)

	producer := &fakePublisher{err: errors.New("channel closed")}
	adapter, err := NewResourceEventsPublisher(producer)
	require.NoError(t, err)

	err = adapter.RecordMutation(context.Background(), domain.MutationRecord{Resource: "banners", Operation: domain.OpDelete, EntityID: 1})
	require.ErrorContains(t, err, "channel closed")

	err = adapter.RecordMutation(context.Background(), domain.MutationRecord{Resource: "banners", Operation: "archive"})
	require.Error(t, err)
}
