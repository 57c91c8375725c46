package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/request-service/internal/config"
	"github.com/spec-kit/request-service/internal/events"
)

// Without a Redis client the service only logs; publishing must still work.
func TestNotificationServiceHandlesEventsWithoutRedis(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.NewNop(), nil, config.NotificationConfig{EventChannel: "request-events"})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventRequestRegistered,
		RequestID: "req-1",
		ActorID:   "user-1",
		Timestamp: time.Now(),
		Payload:   events.RequestRegisteredPayload{RequesterID: "user-1"},
	})
	require.NoError(t, err)
}

func TestNotificationServiceSubscribesToAllEventTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.NewNop(), nil, config.NotificationConfig{})
	svc.RegisterHandlers()

	for _, eventType := range []events.EventType{
		events.EventRequestRegistered,
		events.EventRequestClassified,
		events.EventRequestPriorityChanged,
		events.EventRequestStateChanged,
		events.EventRequestAssigned,
		events.EventRequestClosed,
	} {
		err := dispatcher.Publish(context.Background(), events.Event{Type: eventType})
		require.NoError(t, err)
	}
}
