package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/request-service/internal/config"
	"github.com/spec-kit/request-service/internal/events"
)

// NotificationService reacts to domain events: it logs every event and, when
// a Redis client is configured, publishes the event as JSON to a channel so
// external consumers can follow request activity.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *redis.Client
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. The Redis client may be nil.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redisClient *redis.Client, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redisClient,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to all request events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventRequestRegistered,
		events.EventRequestClassified,
		events.EventRequestPriorityChanged,
		events.EventRequestStateChanged,
		events.EventRequestAssigned,
		events.EventRequestClosed,
	} {
		n.dispatcher.Subscribe(eventType, n.handleEvent)
	}
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("request event",
		zap.String("event_type", string(event.Type)),
		zap.String("request_id", event.RequestID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	n.publishToRedis(ctx, event)
	return nil
}

func (n *NotificationService) publishToRedis(ctx context.Context, event events.Event) {
	if n.redis == nil || strings.TrimSpace(n.cfg.EventChannel) == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, n.cfg.EventChannel, body).Err(); err != nil {
		n.logger.Warn("publish event to redis",
			zap.String("channel", n.cfg.EventChannel),
			zap.Error(err))
	}
}
