package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// EventRepository fans diagnostics events out over Redis Pub/Sub. Nothing is
// stored under a key; events only reach subscribers connected at publish time.
type EventRepository struct {
	client  *redis.Client
	channel string
}

func NewEventRepository(client *redis.Client, channel string) *EventRepository {
	return &EventRepository{client: client, channel: channel}
}

func (r *EventRepository) Channel() string {
	return r.channel
}

// Publish sends ev to every current subscriber.
func (r *EventRepository) Publish(ctx context.Context, ev domain.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of events that is closed when ctx is done or the
// returned close func is called. Malformed messages are skipped.
func (r *EventRepository) Subscribe(ctx context.Context) (<-chan domain.Event, func() error, error) {
	sub := r.client.Subscribe(ctx, r.channel)

	// Wait for the subscription confirmation so no publish is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	out := make(chan domain.Event)
	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					logrus.WithError(err).WithField("channel", r.channel).Warn("skipping malformed diagnostics event")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, sub.Close, nil
}
