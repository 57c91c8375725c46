package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-service/internal/domain"
)

func newStoredRequest(t *testing.T, repo *MemoryRequestRepository, state domain.RequestState, createdAt time.Time) *domain.Request {
	t.Helper()
	request := &domain.Request{
		Description: "solicitud",
		Channel:     domain.ChannelEmail,
		CreatedAt:   createdAt,
		State:       state,
		RequesterID: "student-1",
	}
	request.AppendHistory(domain.RequestHistory{Action: "Solicitud registrada", ActorID: "student-1"}, createdAt)
	require.NoError(t, repo.Create(context.Background(), request))
	return request
}

func TestMemoryCreateAssignsIDs(t *testing.T) {
	repo := NewMemoryRequestRepository()
	request := newStoredRequest(t, repo, domain.RequestStateRegistered, time.Now())

	assert.NotEmpty(t, request.ID)
	require.Len(t, request.History, 1)
	assert.NotEmpty(t, request.History[0].ID)
	assert.Equal(t, request.ID, request.History[0].RequestID)
}

func TestMemoryGetReturnsIsolatedCopy(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	request := newStoredRequest(t, repo, domain.RequestStateRegistered, time.Now())

	loaded, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)

	loaded.State = domain.RequestStateClosed
	loaded.History = append(loaded.History, domain.RequestHistory{Action: "intruso"})

	reloaded, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStateRegistered, reloaded.State)
	assert.Len(t, reloaded.History, 1)
}

func TestMemorySaveUnknownIDFails(t *testing.T) {
	repo := NewMemoryRequestRepository()

	err := repo.Save(context.Background(), &domain.Request{ID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySavePersistsNewHistory(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	request := newStoredRequest(t, repo, domain.RequestStateRegistered, time.Now())

	request.State = domain.RequestStateClassified
	request.AppendHistory(domain.RequestHistory{Action: "Solicitud clasificada", ActorID: "admin-1"}, time.Now())
	require.NoError(t, repo.Save(ctx, request))

	loaded, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStateClassified, loaded.State)
	require.Len(t, loaded.History, 2)
	assert.NotEmpty(t, loaded.History[1].ID)
}

func TestMemoryListWithFilter(t *testing.T) {
	repo := NewMemoryRequestRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	registered := newStoredRequest(t, repo, domain.RequestStateRegistered, base)
	classified := newStoredRequest(t, repo, domain.RequestStateClassified, base.Add(time.Hour))
	seatRequest := domain.RequestTypeSeatRequest
	classified.Type = &seatRequest
	handlerID := "handler-1"
	classified.HandlerID = &handlerID
	require.NoError(t, repo.Save(ctx, classified))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, classified.ID, all[0].ID, "expected newest first")
	assert.Equal(t, registered.ID, all[1].ID)

	state := domain.RequestStateClassified
	result, err := repo.ListWithFilter(ctx, RequestFilter{State: &state})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, classified.ID, result[0].ID)

	otherType := domain.RequestTypeCourseEquivalence
	result, err = repo.ListWithFilter(ctx, RequestFilter{State: &state, Type: &otherType})
	require.NoError(t, err)
	assert.Empty(t, result)

	result, err = repo.ListWithFilter(ctx, RequestFilter{HandlerID: &handlerID})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, classified.ID, result[0].ID)

	byRequester, err := repo.ListByRequester(ctx, "student-1")
	require.NoError(t, err)
	assert.Len(t, byRequester, 2)

	byHandler, err := repo.ListByHandler(ctx, handlerID)
	require.NoError(t, err)
	require.Len(t, byHandler, 1)
}
