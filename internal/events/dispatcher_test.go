package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventRequestRegistered, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventRequestRegistered,
		RequestID: "req-1",
		Timestamp: time.Now(),
	}
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, "evt-1", received[0].ID)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventRequestClosed, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventRequestRegistered}))
	assert.False(t, called)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventRequestAssigned, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	second := false
	dispatcher.Subscribe(EventRequestAssigned, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventRequestAssigned}))
	assert.True(t, second)
}
