package events

import (
	"context"
	"testing"
	"time"

	"taskflow-client/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewBus(logger.NewNopLogger())
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received, err := bus.Subscribe(ctx, TopicSession)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, TopicSession, New("SESSION_AUTHENTICATED", map[string]interface{}{"user_id": "u1"})))

	select {
	case ev := <-received:
		assert.Equal(t, "SESSION_AUTHENTICATED", ev.EventType())
		assert.Equal(t, "u1", ev.Payload()["user_id"])
		assert.False(t, ev.Timestamp().IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBusPublishWithoutSubscriber(t *testing.T) {
	bus := NewBus(logger.NewNopLogger())
	t.Cleanup(func() { _ = bus.Close() })

	assert.NoError(t, bus.Publish(context.Background(), TopicCollection, New("COLLECTION_LOADED", nil)))
}
