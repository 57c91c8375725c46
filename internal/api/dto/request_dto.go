package dto

import (
	"time"

	"github.com/spec-kit/request-service/internal/domain"
)

// RegisterRequest payload for creating a request. Deadline uses the
// "2006-01-02" date layout.
type RegisterRequest struct {
	Description string `json:"description"`
	Channel     string `json:"channel"`
	RequesterID string `json:"requester_id"`
	Deadline    string `json:"deadline,omitempty"`
}

// ClassifyRequest payload.
type ClassifyRequest struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id"`
	Observation string `json:"observation,omitempty"`
}

// PrioritizeRequest payload for manual priority override.
type PrioritizeRequest struct {
	Priority      string `json:"priority"`
	Justification string `json:"justification"`
	UserID        string `json:"user_id"`
}

// ChangeStateRequest payload.
type ChangeStateRequest struct {
	State       string `json:"state"`
	UserID      string `json:"user_id"`
	Observation string `json:"observation,omitempty"`
}

// AssignRequest payload.
type AssignRequest struct {
	HandlerID   string `json:"handler_id"`
	AssignerID  string `json:"assigner_id"`
	Observation string `json:"observation,omitempty"`
}

// CloseRequest payload.
type CloseRequest struct {
	ClosingRemark string `json:"closing_remark"`
	UserID        string `json:"user_id"`
}

// RequestResponse provides full request info.
type RequestResponse struct {
	ID             string            `json:"id"`
	Type           *string           `json:"type"`
	TypeLabel      string            `json:"type_label,omitempty"`
	Description    string            `json:"description"`
	Channel        string            `json:"channel"`
	ChannelLabel   string            `json:"channel_label"`
	CreatedAt      time.Time         `json:"created_at"`
	State          string            `json:"state"`
	StateLabel     string            `json:"state_label"`
	Priority       *string           `json:"priority"`
	PriorityLabel  string            `json:"priority_label,omitempty"`
	PriorityReason string            `json:"priority_reason,omitempty"`
	RequesterID    string            `json:"requester_id"`
	HandlerID      *string           `json:"handler_id"`
	Deadline       *string           `json:"deadline"`
	ClosingRemark  string            `json:"closing_remark,omitempty"`
	History        []HistoryResponse `json:"history,omitempty"`
}

// HistoryResponse represents one audit trail entry.
type HistoryResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Note      string    `json:"note,omitempty"`
}

// FromRequest maps a domain request to its response shape.
func FromRequest(request *domain.Request, includeHistory bool) RequestResponse {
	resp := RequestResponse{
		ID:             request.ID,
		Description:    request.Description,
		Channel:        string(request.Channel),
		ChannelLabel:   request.Channel.Label(),
		CreatedAt:      request.CreatedAt,
		State:          string(request.State),
		StateLabel:     request.State.Label(),
		PriorityReason: request.PriorityReason,
		RequesterID:    request.RequesterID,
		HandlerID:      request.HandlerID,
		ClosingRemark:  request.ClosingRemark,
	}
	if request.Type != nil {
		t := string(*request.Type)
		resp.Type = &t
		resp.TypeLabel = request.Type.Label()
	}
	if request.Priority != nil {
		p := string(*request.Priority)
		resp.Priority = &p
		resp.PriorityLabel = request.Priority.Label()
	}
	if request.Deadline != nil {
		d := request.Deadline.Format("2006-01-02")
		resp.Deadline = &d
	}
	if includeHistory {
		resp.History = FromHistory(request.History)
	}
	return resp
}

// FromHistory maps audit entries to their response shape.
func FromHistory(entries []domain.RequestHistory) []HistoryResponse {
	result := make([]HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, HistoryResponse{
			ID:        entry.ID,
			Timestamp: entry.Timestamp,
			Action:    entry.Action,
			ActorID:   entry.ActorID,
			Note:      entry.Note,
		})
	}
	return result
}
