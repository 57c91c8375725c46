package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/request-service/internal/domain"
)

// MemoryRequestRepository is an in-memory RequestRepository. It backs the
// service when no Postgres DSN is configured and doubles as the test
// implementation. All operations run under one lock, which provides the
// per-record atomicity the Save contract requires.
type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.Request
}

// NewMemoryRequestRepository builds an empty in-memory store.
func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{requests: make(map[string]*domain.Request)}
}

func (r *MemoryRequestRepository) Create(ctx context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	assignHistoryIDs(request)
	r.requests[request.ID] = cloneRequest(request)
	return nil
}

func (r *MemoryRequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRequest(stored), nil
}

func (r *MemoryRequestRepository) List(ctx context.Context) ([]domain.Request, error) {
	return r.ListWithFilter(ctx, RequestFilter{})
}

func (r *MemoryRequestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Request
	for _, stored := range r.requests {
		if filter.State != nil && stored.State != *filter.State {
			continue
		}
		if filter.Type != nil && (stored.Type == nil || *stored.Type != *filter.Type) {
			continue
		}
		if filter.Priority != nil && (stored.Priority == nil || *stored.Priority != *filter.Priority) {
			continue
		}
		if filter.HandlerID != nil && (stored.HandlerID == nil || *stored.HandlerID != *filter.HandlerID) {
			continue
		}
		result = append(result, *cloneRequest(stored))
	}
	sortByCreatedAtDesc(result)
	return result, nil
}

func (r *MemoryRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Request
	for _, stored := range r.requests {
		if stored.RequesterID == requesterID {
			result = append(result, *cloneRequest(stored))
		}
	}
	sortByCreatedAtDesc(result)
	return result, nil
}

func (r *MemoryRequestRepository) ListByHandler(ctx context.Context, handlerID string) ([]domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Request
	for _, stored := range r.requests {
		if stored.HandlerID != nil && *stored.HandlerID == handlerID {
			result = append(result, *cloneRequest(stored))
		}
	}
	sortByCreatedAtDesc(result)
	return result, nil
}

func (r *MemoryRequestRepository) Save(ctx context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[request.ID]; !ok {
		return ErrNotFound
	}
	assignHistoryIDs(request)
	r.requests[request.ID] = cloneRequest(request)
	return nil
}

func assignHistoryIDs(request *domain.Request) {
	for i := range request.History {
		entry := &request.History[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		entry.RequestID = request.ID
	}
}

// cloneRequest deep-copies a request so callers never share mutable state
// with the store.
func cloneRequest(request *domain.Request) *domain.Request {
	clone := *request
	if request.Type != nil {
		t := *request.Type
		clone.Type = &t
	}
	if request.Priority != nil {
		p := *request.Priority
		clone.Priority = &p
	}
	if request.HandlerID != nil {
		h := *request.HandlerID
		clone.HandlerID = &h
	}
	if request.Deadline != nil {
		d := *request.Deadline
		clone.Deadline = &d
	}
	clone.History = append([]domain.RequestHistory(nil), request.History...)
	return &clone
}

func sortByCreatedAtDesc(requests []domain.Request) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}
