package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/request-service/internal/domain"
	"github.com/spec-kit/request-service/internal/events"
	"github.com/spec-kit/request-service/internal/repository"
	apperrors "github.com/spec-kit/request-service/pkg/util"
)

// RequestService coordinates the full request lifecycle: registration,
// classification, prioritization, state transitions, handler assignment and
// closure. Every mutating command runs as one read-validate-mutate-append-save
// unit; the repository's Save contract makes that unit atomic per record.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	priorities *PriorityService
	dispatcher events.Dispatcher
	now        func() time.Time
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	Priorities  *PriorityService
	Dispatcher  events.Dispatcher
	// Clock overrides the time source; defaults to time.Now.
	Clock func() time.Time
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Description string
	Channel     domain.OriginChannel
	RequesterID string
	Deadline    *time.Time
}

// RequestQueryFilter describes listing filters; absent fields are no-ops and
// present fields combine with AND.
type RequestQueryFilter struct {
	State     *domain.RequestState
	Type      *domain.RequestType
	Priority  *domain.Priority
	HandlerID *string
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	priorities := deps.Priorities
	if priorities == nil {
		priorities = NewPriorityService()
	}
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		priorities: priorities,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// Register creates a request in the REGISTERED state and writes the first
// audit entry.
func (s *RequestService) Register(ctx context.Context, input RegisterInput) (*domain.Request, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if !input.Channel.IsValid() {
		return nil, apperrors.NewValidationError("unknown origin channel", map[string]any{"channel": input.Channel})
	}

	requester, err := s.getUser(ctx, input.RequesterID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	request := &domain.Request{
		Description: strings.TrimSpace(input.Description),
		Channel:     input.Channel,
		CreatedAt:   now,
		State:       domain.RequestStateRegistered,
		RequesterID: requester.ID,
		Deadline:    input.Deadline,
	}
	request.AppendHistory(domain.RequestHistory{
		Action:  "Solicitud registrada",
		ActorID: requester.ID,
		Note:    "Solicitud creada a través del canal: " + input.Channel.Label(),
	}, now)

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestRegistered,
		RequestID: request.ID,
		ActorID:   requester.ID,
		Payload: events.RequestRegisteredPayload{
			Channel:     request.Channel,
			RequesterID: request.RequesterID,
			Deadline:    request.Deadline,
		},
	})
	return request, nil
}

// Classify assigns a request type, moves the request to CLASSIFIED and runs
// the priority rule engine.
func (s *RequestService) Classify(ctx context.Context, requestID string, requestType domain.RequestType, actorID, observation string) (*domain.Request, error) {
	if !requestType.IsValid() {
		return nil, apperrors.NewValidationError("unknown request type", map[string]any{"type": requestType})
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotClosed(request); err != nil {
		return nil, err
	}
	if err := ensureTransition(request, domain.RequestStateClassified); err != nil {
		return nil, err
	}

	request.Type = &requestType
	request.State = domain.RequestStateClassified

	now := s.now()
	priority, reason := s.priorities.Score(request.Type, request.Deadline, now)
	request.Priority = &priority
	request.PriorityReason = reason

	note := observation
	if note == "" {
		note = "Prioridad asignada: " + priority.Label()
	}
	request.AppendHistory(domain.RequestHistory{
		Action:  "Solicitud clasificada como: " + requestType.Label(),
		ActorID: actor.ID,
		Note:    note,
	}, now)

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestClassified,
		RequestID: request.ID,
		ActorID:   actor.ID,
		Payload: events.RequestClassifiedPayload{
			Type:           requestType,
			Priority:       priority,
			PriorityReason: reason,
		},
	})
	return request, nil
}

// SetPriority overrides the priority with a mandatory justification. Priority
// is orthogonal to the lifecycle, so no transition check beyond the terminal
// guard.
func (s *RequestService) SetPriority(ctx context.Context, requestID string, priority domain.Priority, justification, actorID string) (*domain.Request, error) {
	if strings.TrimSpace(justification) == "" {
		return nil, apperrors.NewValidationError("justification required", nil)
	}
	if !priority.IsValid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotClosed(request); err != nil {
		return nil, err
	}

	oldPriority := request.Priority
	request.Priority = &priority
	request.PriorityReason = justification

	action := "Prioridad asignada: " + priority.Label()
	if oldPriority != nil {
		action = "Prioridad cambiada de " + oldPriority.Label() + " a " + priority.Label()
	}
	request.AppendHistory(domain.RequestHistory{
		Action:  action,
		ActorID: actor.ID,
		Note:    justification,
	}, s.now())

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestPriorityChanged,
		RequestID: request.ID,
		ActorID:   actor.ID,
		Payload: events.RequestPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: priority,
			Reason:      justification,
		},
	})
	return request, nil
}

// ChangeState moves the request along the lifecycle graph.
func (s *RequestService) ChangeState(ctx context.Context, requestID string, target domain.RequestState, actorID, observation string) (*domain.Request, error) {
	if !target.IsValid() {
		return nil, apperrors.NewValidationError("unknown request state", map[string]any{"state": target})
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotClosed(request); err != nil {
		return nil, err
	}
	if err := ensureTransition(request, target); err != nil {
		return nil, err
	}

	oldState := request.State
	request.State = target
	request.AppendHistory(domain.RequestHistory{
		Action:  "Estado cambiado de " + oldState.Label() + " a " + target.Label(),
		ActorID: actor.ID,
		Note:    observation,
	}, s.now())

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStateChanged,
		RequestID: request.ID,
		ActorID:   actor.ID,
		Payload: events.RequestStateChangedPayload{
			OldState: oldState,
			NewState: target,
			Note:     observation,
		},
	})
	return request, nil
}

// AssignHandler assigns an active, role-eligible handler to the request.
func (s *RequestService) AssignHandler(ctx context.Context, requestID, handlerID, assignerID, observation string) (*domain.Request, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	handler, err := s.getUser(ctx, handlerID)
	if err != nil {
		return nil, err
	}
	assigner, err := s.getUser(ctx, assignerID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotClosed(request); err != nil {
		return nil, err
	}
	if !handler.Active {
		return nil, apperrors.NewForbidden("handler " + handler.FullName() + " is not active")
	}
	if !handler.Role.CanHandleRequests() {
		return nil, apperrors.NewForbidden("user role is not eligible to handle requests")
	}

	request.HandlerID = &handler.ID
	request.AppendHistory(domain.RequestHistory{
		Action:  "Responsable asignado: " + handler.FullName(),
		ActorID: assigner.ID,
		Note:    observation,
	}, s.now())

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestAssigned,
		RequestID: request.ID,
		ActorID:   assigner.ID,
		Payload: events.RequestAssignedPayload{
			HandlerID:   handler.ID,
			HandlerName: handler.FullName(),
		},
	})
	return request, nil
}

// Close terminates the request. Closure is only reachable from RESOLVED and
// requires a closing remark; a closed request accepts no further mutation.
func (s *RequestService) Close(ctx context.Context, requestID, closingRemark, actorID string) (*domain.Request, error) {
	if strings.TrimSpace(closingRemark) == "" {
		return nil, apperrors.NewValidationError("closing remark required", nil)
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if request.State != domain.RequestStateResolved {
		return nil, apperrors.NewInvalidTransition(
			"only requests in RESOLVED state can be closed",
			map[string]any{"current_state": request.State})
	}

	request.State = domain.RequestStateClosed
	request.ClosingRemark = closingRemark
	request.AppendHistory(domain.RequestHistory{
		Action:  "Solicitud cerrada",
		ActorID: actor.ID,
		Note:    closingRemark,
	}, s.now())

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestClosed,
		RequestID: request.ID,
		ActorID:   actor.ID,
		Payload: events.RequestClosedPayload{
			ClosingRemark: closingRemark,
		},
	})
	return request, nil
}

// GetByID returns one request with its full audit trail.
func (s *RequestService) GetByID(ctx context.Context, requestID string) (*domain.Request, error) {
	return s.getRequest(ctx, requestID)
}

// ListAll returns every request.
func (s *RequestService) ListAll(ctx context.Context) ([]domain.Request, error) {
	result, err := s.requests.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListWithFilter returns requests matching the combined filters.
func (s *RequestService) ListWithFilter(ctx context.Context, filter RequestQueryFilter) ([]domain.Request, error) {
	result, err := s.requests.ListWithFilter(ctx, repository.RequestFilter{
		State:     filter.State,
		Type:      filter.Type,
		Priority:  filter.Priority,
		HandlerID: filter.HandlerID,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListByRequester returns requests submitted by a user.
func (s *RequestService) ListByRequester(ctx context.Context, requesterID string) ([]domain.Request, error) {
	result, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListByHandler returns requests assigned to a handler.
func (s *RequestService) ListByHandler(ctx context.Context, handlerID string) ([]domain.Request, error) {
	result, err := s.requests.ListByHandler(ctx, handlerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *RequestService) getRequest(ctx context.Context, id string) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

func (s *RequestService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func ensureNotClosed(request *domain.Request) error {
	if request.State == domain.RequestStateClosed {
		return apperrors.NewForbidden("request " + request.ID + " is closed and cannot be modified")
	}
	return nil
}

func ensureTransition(request *domain.Request, target domain.RequestState) error {
	if !request.State.CanTransition(target) {
		return apperrors.NewInvalidTransition(
			"cannot transition from "+string(request.State)+" to "+string(target),
			map[string]any{"from": request.State, "to": target})
	}
	return nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
