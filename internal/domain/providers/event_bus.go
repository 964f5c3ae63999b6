package providers

import (
	"context"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to schedule
// change events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ScheduleEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ScheduleEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelSchedulePrefix is the prefix for lawyer-specific channels.
const EventChannelSchedulePrefix = "schedule:"

// GetScheduleChannel returns the channel name for a specific lawyer
func GetScheduleChannel(lawyerID string) string {
	return EventChannelSchedulePrefix + lawyerID
}
