package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
)

// RedisEventBus implements EventBus using Redis Pub/Sub
type RedisEventBus struct {
	client        *redis.Client
	subscriptions map[string]*redis.PubSub
	subscribers   map[string][]chan *entities.ScheduleEvent
	mu            sync.RWMutex
}

// Ensure RedisEventBus implements EventBus
var _ providers.EventBus = (*RedisEventBus)(nil)

// NewRedisEventBus creates a new Redis-backed event bus
func NewRedisEventBus(client *redis.Client) *RedisEventBus {
	return &RedisEventBus{
		client:        client,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string][]chan *entities.ScheduleEvent),
	}
}

// Publish publishes an event to a Redis channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.ScheduleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to channel %s: %w", channel, err)
	}
	return nil
}

// Subscribe subscribes to events on a channel. The first subscription to a
// channel opens the underlying Redis subscription; later ones share it.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ScheduleEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := make(chan *entities.ScheduleEvent, 16)
	b.subscribers[channel] = append(b.subscribers[channel], events)

	if _, exists := b.subscriptions[channel]; !exists {
		pubsub := b.client.Subscribe(ctx, channel)
		if _, err := pubsub.Receive(ctx); err != nil {
			pubsub.Close()
			return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
		}
		b.subscriptions[channel] = pubsub
		go b.receiveMessages(channel, pubsub)
	}

	return events, nil
}

// receiveMessages fans Redis messages out to all local subscribers
func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		var event entities.ScheduleEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("Failed to unmarshal schedule event")
			continue
		}

		b.mu.RLock()
		subs := b.subscribers[channel]
		b.mu.RUnlock()

		for _, sub := range subs {
			select {
			case sub <- &event:
			default:
				// Subscriber is not keeping up, drop the event
				log.Warn().Str("channel", channel).Str("event_type", string(event.EventType)).Msg("Dropping schedule event for slow subscriber")
			}
		}
	}

	b.mu.Lock()
	for _, sub := range b.subscribers[channel] {
		close(sub)
	}
	delete(b.subscribers, channel)
	b.mu.Unlock()
}

// Unsubscribe closes the subscription on a channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	pubsub, exists := b.subscriptions[channel]
	if exists {
		delete(b.subscriptions, channel)
	}
	b.mu.Unlock()

	if !exists {
		return nil
	}
	if err := pubsub.Unsubscribe(ctx, channel); err != nil {
		return fmt.Errorf("failed to unsubscribe from channel %s: %w", channel, err)
	}
	return pubsub.Close()
}

// Close closes all subscriptions
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for channel, pubsub := range b.subscriptions {
		if err := pubsub.Close(); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("Failed to close pubsub subscription")
		}
	}
	b.subscriptions = make(map[string]*redis.PubSub)
	return nil
}
