package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	var calls int32

	bus.Subscribe("catalog.changed", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "catalog.changed", e.Type())
		return nil
	})
	bus.Subscribe("catalog.changed", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	err := bus.Publish(context.Background(), NewBaseEvent("catalog.changed", "test", nil))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	err := bus.Publish(context.Background(), NewBaseEvent("nobody.listens", "test", nil))
	require.NoError(t, err)
}

func TestPublishReturnsFirstHandlerError(t *testing.T) {
	bus := NewEventBus(nil)
	wantErr := errors.New("cache unavailable")

	bus.Subscribe("catalog.changed", func(ctx context.Context, e Event) error {
		return wantErr
	})

	err := bus.Publish(context.Background(), NewBaseEvent("catalog.changed", "test", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestPublishAndForgetSwallowsErrors(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Subscribe("catalog.changed", func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})

	// Must not panic or surface the error.
	bus.PublishAndForget(context.Background(), NewBaseEvent("catalog.changed", "test", nil))
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Subscribe("catalog.changed", func(ctx context.Context, e Event) error { return nil })
	require.Equal(t, 1, bus.GetSubscriberCount("catalog.changed"))

	bus.Unsubscribe("catalog.changed")
	assert.Equal(t, 0, bus.GetSubscriberCount("catalog.changed"))
}

func TestBaseEventCarriesData(t *testing.T) {
	e := NewBaseEvent("catalog.changed", "schema-catalog", map[string]string{"projectID": "p1"})
	assert.Equal(t, "schema-catalog", e.Source())
	assert.False(t, e.Timestamp().IsZero())
	data, ok := e.Data().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "p1", data["projectID"])
}
