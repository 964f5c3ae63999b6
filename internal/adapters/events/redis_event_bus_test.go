package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
)

func newTestBus(t *testing.T) *RedisEventBus {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	bus := NewRedisEventBus(client)
	t.Cleanup(func() { bus.Close() })
	return bus
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	ctx := context.Background()
	bus := newTestBus(t)

	channel := providers.GetScheduleChannel("lawyer-1")
	events, err := bus.Subscribe(ctx, channel)
	require.NoError(t, err)

	sent := entities.NewScheduleEvent("lawyer-1", entities.ScheduleEventTypeSlotBooked, map[string]interface{}{
		"slot_id": "2024-03-02-09:00",
	})
	require.NoError(t, bus.Publish(ctx, channel, sent))

	select {
	case received := <-events:
		assert.Equal(t, sent.LawyerID, received.LawyerID)
		assert.Equal(t, entities.ScheduleEventTypeSlotBooked, received.EventType)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribersOnOtherChannelsDoNotReceive(t *testing.T) {
	ctx := context.Background()
	bus := newTestBus(t)

	other, err := bus.Subscribe(ctx, providers.GetScheduleChannel("lawyer-2"))
	require.NoError(t, err)

	event := entities.NewScheduleEvent("lawyer-1", entities.ScheduleEventTypeTemplateSaved, nil)
	require.NoError(t, bus.Publish(ctx, providers.GetScheduleChannel("lawyer-1"), event))

	select {
	case received := <-other:
		t.Fatalf("unexpected event for lawyer-2: %+v", received)
	case <-time.After(200 * time.Millisecond):
	}
}
