package pos

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const EventOrderFinalized = "order.finalized"

// OrderEvent is the message published after an order commits. Consumers are
// reporting dashboards; publishing is best-effort and never blocks a sale.
type OrderEvent struct {
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	Subtotal      float64   `json:"subtotal"`
	PaymentMethod string    `json:"payment_method"`
	Staff         string    `json:"staff"`
	Source        string    `json:"source"`
	Spot          *string   `json:"spot,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// RedisPublisher fans order events out over redis pub/sub, one channel per
// event type plus a firehose channel.
type RedisPublisher struct {
	redis *redis.Client
}

func NewRedisPublisher(redisClient *redis.Client) *RedisPublisher {
	return &RedisPublisher{redis: redisClient}
}

func (p *RedisPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := fmt.Sprintf("pos:events:%s", event.EventType)
	if err := p.redis.Publish(ctx, channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if err := p.redis.Publish(ctx, "pos:events:all", eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish to all channel: %w", err)
	}

	return nil
}
