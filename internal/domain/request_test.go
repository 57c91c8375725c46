package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	states := []RequestState{
		RequestStateRegistered,
		RequestStateClassified,
		RequestStateInProgress,
		RequestStateResolved,
		RequestStateClosed,
	}
	allowed := map[RequestState]RequestState{
		RequestStateRegistered: RequestStateClassified,
		RequestStateClassified: RequestStateInProgress,
		RequestStateInProgress: RequestStateResolved,
		RequestStateResolved:   RequestStateClosed,
	}

	for _, from := range states {
		for _, to := range states {
			expected := allowed[from] == to && from != RequestStateClosed
			assert.Equal(t, expected, from.CanTransition(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestClosedHasNoOutgoingTransitions(t *testing.T) {
	for _, to := range []RequestState{
		RequestStateRegistered,
		RequestStateClassified,
		RequestStateInProgress,
		RequestStateResolved,
		RequestStateClosed,
	} {
		assert.False(t, RequestStateClosed.CanTransition(to))
	}
}

func TestStateValidation(t *testing.T) {
	assert.True(t, RequestStateRegistered.IsValid())
	assert.True(t, RequestStateClosed.IsValid())
	assert.False(t, RequestState("ARCHIVED").IsValid())
	assert.False(t, RequestState("").IsValid())
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Registrada", RequestStateRegistered.Label())
	assert.Equal(t, "En atención", RequestStateInProgress.Label())
	assert.Equal(t, "Atendida", RequestStateResolved.Label())
	assert.Equal(t, "Registro de asignaturas", RequestTypeSubjectRegistration.Label())
	assert.Equal(t, "Homologación", RequestTypeCourseEquivalence.Label())
	assert.Equal(t, "Crítica", PriorityCritical.Label())
	assert.Equal(t, "Correo electrónico", ChannelEmail.Label())
}

func TestAppendHistoryStampsZeroTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	request := &Request{ID: "req-1"}

	request.AppendHistory(RequestHistory{Action: "Solicitud registrada", ActorID: "user-1"}, now)

	require.Len(t, request.History, 1)
	entry := request.History[0]
	assert.Equal(t, now, entry.Timestamp)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "Solicitud registrada", entry.Action)
}

func TestAppendHistoryKeepsExplicitTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	explicit := now.Add(-time.Hour)
	request := &Request{ID: "req-1"}

	request.AppendHistory(RequestHistory{Action: "x", Timestamp: explicit}, now)

	require.Len(t, request.History, 1)
	assert.Equal(t, explicit, request.History[0].Timestamp)
}

func TestAppendHistoryIsAppendOnly(t *testing.T) {
	now := time.Now()
	request := &Request{ID: "req-1"}

	request.AppendHistory(RequestHistory{Action: "first"}, now)
	request.AppendHistory(RequestHistory{Action: "second"}, now.Add(time.Minute))

	require.Len(t, request.History, 2)
	assert.Equal(t, "first", request.History[0].Action)
	assert.Equal(t, "second", request.History[1].Action)
}

func TestRoleCanHandleRequests(t *testing.T) {
	assert.True(t, RoleHandler.CanHandleRequests())
	assert.True(t, RoleAdministrative.CanHandleRequests())
	assert.True(t, RoleInstructor.CanHandleRequests())
	assert.False(t, RoleStudent.CanHandleRequests())
}

func TestUserFullName(t *testing.T) {
	user := &User{FirstName: "Juan", LastName: "Pérez"}
	assert.Equal(t, "Juan Pérez", user.FullName())

	single := &User{FirstName: "Ana"}
	assert.Equal(t, "Ana", single.FullName())
}
