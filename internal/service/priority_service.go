package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/request-service/internal/domain"
)

// PriorityService computes request priority from classification and deadline.
//
// Score is a pure function: identical inputs always produce the identical
// level and justification text. "Today" is an explicit parameter so callers
// control the clock.
type PriorityService struct{}

// NewPriorityService constructs the service.
func NewPriorityService() *PriorityService {
	return &PriorityService{}
}

// Score applies the rule engine and returns the priority level together with
// its justification text, prefixed with the accumulated point total.
func (s *PriorityService) Score(requestType *domain.RequestType, deadline *time.Time, today time.Time) (domain.Priority, string) {
	total := 0
	var justification strings.Builder

	total += scoreByType(requestType, &justification)
	total += scoreByDeadline(deadline, today, &justification)

	priority := priorityForTotal(total)
	text := fmt.Sprintf("Puntaje total: %d. %s", total, justification.String())
	return priority, text
}

func scoreByType(requestType *domain.RequestType, justification *strings.Builder) int {
	if requestType == nil {
		justification.WriteString("Sin tipo de solicitud asignado. ")
		return 0
	}

	switch *requestType {
	case domain.RequestTypeSubjectRegistration:
		justification.WriteString("Registro de asignaturas: impacto alto en matrícula (+4). ")
		return 4
	case domain.RequestTypeSubjectCancellation:
		justification.WriteString("Cancelación de asignaturas: impacto alto en matrícula (+4). ")
		return 4
	case domain.RequestTypeCourseEquivalence:
		justification.WriteString("Homologación: impacto medio en plan de estudios (+3). ")
		return 3
	case domain.RequestTypeSeatRequest:
		justification.WriteString("Solicitud de cupos: impacto medio en matrícula (+2). ")
		return 2
	case domain.RequestTypeAcademicInquiry:
		justification.WriteString("Consulta académica: bajo impacto operativo (+1). ")
		return 1
	default:
		justification.WriteString("Sin tipo de solicitud asignado. ")
		return 0
	}
}

func scoreByDeadline(deadline *time.Time, today time.Time, justification *strings.Builder) int {
	if deadline == nil {
		justification.WriteString("Sin fecha límite definida (+0). ")
		return 0
	}

	days := daysBetween(today, *deadline)
	switch {
	case days < 0:
		justification.WriteString("Fecha límite vencida (+5). ")
		return 5
	case days <= 2:
		justification.WriteString("Fecha límite en menos de 2 días (+4). ")
		return 4
	case days <= 5:
		justification.WriteString("Fecha límite en menos de 5 días (+3). ")
		return 3
	case days <= 10:
		justification.WriteString("Fecha límite en menos de 10 días (+2). ")
		return 2
	default:
		justification.WriteString("Fecha límite lejana (+1). ")
		return 1
	}
}

func priorityForTotal(total int) domain.Priority {
	switch {
	case total >= 7:
		return domain.PriorityCritical
	case total >= 5:
		return domain.PriorityHigh
	case total >= 3:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// daysBetween counts whole calendar days from one date to another, ignoring
// the time-of-day component of both.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
