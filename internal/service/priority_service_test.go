package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/request-service/internal/domain"
)

func TestScoreByTypeAndDeadline(t *testing.T) {
	today := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	deadlineIn := func(days int) *time.Time {
		d := today.AddDate(0, 0, days)
		return &d
	}
	typeOf := func(rt domain.RequestType) *domain.RequestType { return &rt }

	tests := []struct {
		name         string
		requestType  *domain.RequestType
		deadline     *time.Time
		wantPriority domain.Priority
		wantReason   string
	}{
		{
			name:         "no type no deadline",
			wantPriority: domain.PriorityLow,
			wantReason:   "Puntaje total: 0. Sin tipo de solicitud asignado. Sin fecha límite definida (+0). ",
		},
		{
			name:         "registration without deadline",
			requestType:  typeOf(domain.RequestTypeSubjectRegistration),
			wantPriority: domain.PriorityMedium,
			wantReason:   "Puntaje total: 4. Registro de asignaturas: impacto alto en matrícula (+4). Sin fecha límite definida (+0). ",
		},
		{
			name:         "cancellation overdue deadline",
			requestType:  typeOf(domain.RequestTypeSubjectCancellation),
			deadline:     deadlineIn(-1),
			wantPriority: domain.PriorityCritical,
			wantReason:   "Puntaje total: 9. Cancelación de asignaturas: impacto alto en matrícula (+4). Fecha límite vencida (+5). ",
		},
		{
			name:         "equivalence due tomorrow",
			requestType:  typeOf(domain.RequestTypeCourseEquivalence),
			deadline:     deadlineIn(1),
			wantPriority: domain.PriorityCritical,
			wantReason:   "Puntaje total: 7. Homologación: impacto medio en plan de estudios (+3). Fecha límite en menos de 2 días (+4). ",
		},
		{
			name:         "seat request due in five days",
			requestType:  typeOf(domain.RequestTypeSeatRequest),
			deadline:     deadlineIn(5),
			wantPriority: domain.PriorityHigh,
			wantReason:   "Puntaje total: 5. Solicitud de cupos: impacto medio en matrícula (+2). Fecha límite en menos de 5 días (+3). ",
		},
		{
			name:         "inquiry due in ten days",
			requestType:  typeOf(domain.RequestTypeAcademicInquiry),
			deadline:     deadlineIn(10),
			wantPriority: domain.PriorityMedium,
			wantReason:   "Puntaje total: 3. Consulta académica: bajo impacto operativo (+1). Fecha límite en menos de 10 días (+2). ",
		},
		{
			name:         "inquiry far deadline",
			requestType:  typeOf(domain.RequestTypeAcademicInquiry),
			deadline:     deadlineIn(11),
			wantPriority: domain.PriorityLow,
			wantReason:   "Puntaje total: 2. Consulta académica: bajo impacto operativo (+1). Fecha límite lejana (+1). ",
		},
	}

	svc := NewPriorityService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			priority, reason := svc.Score(tc.requestType, tc.deadline, today)
			assert.Equal(t, tc.wantPriority, priority)
			assert.Equal(t, tc.wantReason, reason)
		})
	}
}

func TestScoreDeadlineBoundaries(t *testing.T) {
	today := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	rt := domain.RequestTypeAcademicInquiry

	tests := []struct {
		days      int
		wantTotal domain.Priority
	}{
		{-1, domain.PriorityHigh},   // 1 + 5
		{0, domain.PriorityHigh},    // 1 + 4, same-day deadline
		{2, domain.PriorityHigh},    // 1 + 4
		{3, domain.PriorityMedium},  // 1 + 3
		{5, domain.PriorityMedium},  // 1 + 3
		{6, domain.PriorityMedium},  // 1 + 2
		{10, domain.PriorityMedium}, // 1 + 2
		{11, domain.PriorityLow},    // 1 + 1
	}

	svc := NewPriorityService()
	for _, tc := range tests {
		deadline := today.AddDate(0, 0, tc.days)
		priority, _ := svc.Score(&rt, &deadline, today)
		assert.Equal(t, tc.wantTotal, priority, "deadline in %d days", tc.days)
	}
}

// Score ignores the time-of-day component: a deadline later today counts as
// zero days away regardless of hours.
func TestScoreIgnoresTimeOfDay(t *testing.T) {
	rt := domain.RequestTypeSeatRequest
	morning := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 3, 12, 2, 0, 0, 0, time.UTC)

	svc := NewPriorityService()
	pMorning, rMorning := svc.Score(&rt, &deadline, morning)
	pEvening, rEvening := svc.Score(&rt, &deadline, evening)

	assert.Equal(t, pMorning, pEvening)
	assert.Equal(t, rMorning, rEvening)
}

func TestScoreIsDeterministic(t *testing.T) {
	rt := domain.RequestTypeCourseEquivalence
	today := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := today.AddDate(0, 0, 4)

	svc := NewPriorityService()
	p1, r1 := svc.Score(&rt, &deadline, today)
	p2, r2 := svc.Score(&rt, &deadline, today)

	assert.Equal(t, p1, p2)
	assert.Equal(t, r1, r2)
}
