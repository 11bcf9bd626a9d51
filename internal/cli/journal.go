package cli

import (
	"context"

	"taskflow-client/internal/events"
	"taskflow-client/internal/pkg/logger"
)

type subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan events.BaseEvent, error)
}

// journal writes every session and collection change to the log until ctx
// is cancelled.
func journal(ctx context.Context, bus subscriber, l logger.ILogger) error {
	for _, topic := range []string{events.TopicSession, events.TopicCollection} {
		ch, err := bus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go func(topic string, ch <-chan events.BaseEvent) {
			for ev := range ch {
				l.Info("journal", ev.EventType(), map[string]interface{}{
					"topic":       topic,
					"data":        ev.Payload(),
					"occurred_at": ev.Timestamp(),
				})
			}
		}(topic, ch)
	}
	return nil
}
