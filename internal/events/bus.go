package events

import (
	"context"
	"encoding/json"

	"taskflow-client/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// Bus fans change notifications out to read-only consumers. Publishing never
// blocks on slow subscribers and events published with no subscriber are
// dropped.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewBus(l logger.ILogger) *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NewStdLogger(false, false),
		),
		logger: l,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, event Event) error {
	payload, err := json.Marshal(BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.pubSub.Publish(topic, msg)
}

// Subscribe delivers events on topic until ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan BaseEvent, error) {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := make(chan BaseEvent)
	go func() {
		defer close(out)
		for msg := range messages {
			var ev BaseEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				b.logger.Warn("events", "Dropping malformed event", map[string]interface{}{"topic": topic, "error": err.Error()})
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error {
	return nil
}
