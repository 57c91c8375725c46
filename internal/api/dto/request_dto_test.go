package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-service/internal/domain"
)

func TestFromRequestMapsLabelsAndDeadline(t *testing.T) {
	requestType := domain.RequestTypeCourseEquivalence
	priority := domain.PriorityHigh
	handlerID := "handler-1"
	deadline := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	request := &domain.Request{
		ID:             "req-1",
		Type:           &requestType,
		Description:    "Homologar materia",
		Channel:        domain.ChannelSAC,
		CreatedAt:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		State:          domain.RequestStateClassified,
		Priority:       &priority,
		PriorityReason: "Puntaje total: 5. ",
		RequesterID:    "student-1",
		HandlerID:      &handlerID,
		Deadline:       &deadline,
		History: []domain.RequestHistory{
			{ID: "h-1", Action: "Solicitud registrada", ActorID: "student-1"},
		},
	}

	resp := FromRequest(request, true)

	require.NotNil(t, resp.Type)
	assert.Equal(t, "COURSE_EQUIVALENCE", *resp.Type)
	assert.Equal(t, "Homologación", resp.TypeLabel)
	assert.Equal(t, "Clasificada", resp.StateLabel)
	assert.Equal(t, "Sistema Académico", resp.ChannelLabel)
	require.NotNil(t, resp.Priority)
	assert.Equal(t, "HIGH", *resp.Priority)
	assert.Equal(t, "Alta", resp.PriorityLabel)
	require.NotNil(t, resp.Deadline)
	assert.Equal(t, "2024-03-15", *resp.Deadline)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "Solicitud registrada", resp.History[0].Action)
}

func TestFromRequestOmitsUnsetFields(t *testing.T) {
	request := &domain.Request{
		ID:          "req-1",
		Description: "Consulta",
		Channel:     domain.ChannelEmail,
		State:       domain.RequestStateRegistered,
		RequesterID: "student-1",
		History: []domain.RequestHistory{
			{ID: "h-1", Action: "Solicitud registrada"},
		},
	}

	resp := FromRequest(request, false)

	assert.Nil(t, resp.Type)
	assert.Nil(t, resp.Priority)
	assert.Nil(t, resp.Deadline)
	assert.Nil(t, resp.HandlerID)
	assert.Empty(t, resp.History)
}

func TestFromUserHidesCredentials(t *testing.T) {
	user := &domain.User{
		ID:             "u-1",
		Identification: "1001",
		FirstName:      "Ana",
		LastName:       "Martínez",
		Email:          "ana@uni.edu",
		Role:           domain.RoleAdministrative,
		PasswordHash:   "$2a$10$secret",
		Active:         true,
	}

	resp := FromUser(user)

	assert.Equal(t, "Ana Martínez", resp.FullName)
	assert.Equal(t, "Administrativo", resp.RoleLabel)
	assert.True(t, resp.Active)
}
