package events

import (
	"time"

	"github.com/spec-kit/request-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestRegistered      EventType = "request_registered"
	EventRequestClassified      EventType = "request_classified"
	EventRequestPriorityChanged EventType = "request_priority_changed"
	EventRequestStateChanged    EventType = "request_state_changed"
	EventRequestAssigned        EventType = "request_assigned"
	EventRequestClosed          EventType = "request_closed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestRegisteredPayload payload.
type RequestRegisteredPayload struct {
	Channel     domain.OriginChannel `json:"channel"`
	RequesterID string               `json:"requester_id"`
	Deadline    *time.Time           `json:"deadline,omitempty"`
}

// RequestClassifiedPayload payload.
type RequestClassifiedPayload struct {
	Type           domain.RequestType `json:"type"`
	Priority       domain.Priority    `json:"priority"`
	PriorityReason string             `json:"priority_reason"`
}

// RequestPriorityChangedPayload payload.
type RequestPriorityChangedPayload struct {
	OldPriority *domain.Priority `json:"old_priority,omitempty"`
	NewPriority domain.Priority  `json:"new_priority"`
	Reason      string           `json:"reason"`
}

// RequestStateChangedPayload payload.
type RequestStateChangedPayload struct {
	OldState domain.RequestState `json:"old_state"`
	NewState domain.RequestState `json:"new_state"`
	Note     string              `json:"note,omitempty"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	HandlerID   string `json:"handler_id"`
	HandlerName string `json:"handler_name"`
}

// RequestClosedPayload payload.
type RequestClosedPayload struct {
	ClosingRemark string `json:"closing_remark"`
}
