package domain

import "time"

// RequestState enumerates lifecycle states for academic requests.
type RequestState string

const (
	RequestStateRegistered RequestState = "REGISTERED"
	RequestStateClassified RequestState = "CLASSIFIED"
	RequestStateInProgress RequestState = "IN_PROGRESS"
	RequestStateResolved   RequestState = "RESOLVED"
	RequestStateClosed     RequestState = "CLOSED"
)

// stateLabels maps states to the display labels used in audit text.
var stateLabels = map[RequestState]string{
	RequestStateRegistered: "Registrada",
	RequestStateClassified: "Clasificada",
	RequestStateInProgress: "En atención",
	RequestStateResolved:   "Atendida",
	RequestStateClosed:     "Cerrada",
}

// Label returns the human-readable description of the state.
func (s RequestState) Label() string {
	return stateLabels[s]
}

// IsValid reports whether the state is one of the defined values.
func (s RequestState) IsValid() bool {
	_, ok := stateLabels[s]
	return ok
}

// allowedTransitions encodes the legal lifecycle graph. The lifecycle is a
// straight chain; CLOSED is terminal and has no outgoing edges.
var allowedTransitions = map[RequestState][]RequestState{
	RequestStateRegistered: {RequestStateClassified},
	RequestStateClassified: {RequestStateInProgress},
	RequestStateInProgress: {RequestStateResolved},
	RequestStateResolved:   {RequestStateClosed},
	RequestStateClosed:     {},
}

// CanTransition reports whether moving from s to next is a legal transition.
func (s RequestState) CanTransition(next RequestState) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// RequestType enumerates the academic request classifications.
type RequestType string

const (
	RequestTypeSubjectRegistration RequestType = "SUBJECT_REGISTRATION"
	RequestTypeSubjectCancellation RequestType = "SUBJECT_CANCELLATION"
	RequestTypeCourseEquivalence   RequestType = "COURSE_EQUIVALENCE"
	RequestTypeSeatRequest         RequestType = "SEAT_REQUEST"
	RequestTypeAcademicInquiry     RequestType = "ACADEMIC_INQUIRY"
)

var requestTypeLabels = map[RequestType]string{
	RequestTypeSubjectRegistration: "Registro de asignaturas",
	RequestTypeSubjectCancellation: "Cancelación de asignaturas",
	RequestTypeCourseEquivalence:   "Homologación",
	RequestTypeSeatRequest:         "Solicitud de cupos",
	RequestTypeAcademicInquiry:     "Consulta académica",
}

// Label returns the human-readable description of the request type.
func (t RequestType) Label() string {
	return requestTypeLabels[t]
}

// IsValid reports whether the type is one of the defined values.
func (t RequestType) IsValid() bool {
	_, ok := requestTypeLabels[t]
	return ok
}

// Priority enumerates urgency levels.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

var priorityLabels = map[Priority]string{
	PriorityLow:      "Baja",
	PriorityMedium:   "Media",
	PriorityHigh:     "Alta",
	PriorityCritical: "Crítica",
}

// Label returns the human-readable description of the priority.
func (p Priority) Label() string {
	return priorityLabels[p]
}

// IsValid reports whether the priority is one of the defined values.
func (p Priority) IsValid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// OriginChannel enumerates intake channels for requests.
type OriginChannel string

const (
	ChannelCSU      OriginChannel = "CSU"
	ChannelEmail    OriginChannel = "EMAIL"
	ChannelSAC      OriginChannel = "SAC"
	ChannelPhone    OriginChannel = "PHONE"
	ChannelInPerson OriginChannel = "IN_PERSON"
)

var channelLabels = map[OriginChannel]string{
	ChannelCSU:      "Centro de Servicios Universitarios",
	ChannelEmail:    "Correo electrónico",
	ChannelSAC:      "Sistema Académico",
	ChannelPhone:    "Telefónico",
	ChannelInPerson: "Atención presencial",
}

// Label returns the human-readable description of the channel.
func (c OriginChannel) Label() string {
	return channelLabels[c]
}

// IsValid reports whether the channel is one of the defined values.
func (c OriginChannel) IsValid() bool {
	_, ok := channelLabels[c]
	return ok
}

// Request is the aggregate for academic service requests. CreatedAt and
// RequesterID are immutable once set; ClosingRemark is set only at closure;
// History is append-only and ordered by timestamp.
type Request struct {
	ID             string
	Type           *RequestType
	Description    string
	Channel        OriginChannel
	CreatedAt      time.Time
	State          RequestState
	Priority       *Priority
	PriorityReason string
	RequesterID    string
	HandlerID      *string
	Deadline       *time.Time
	ClosingRemark  string
	History        []RequestHistory
}

// AppendHistory adds an audit entry at the tail of the trail, stamping the
// current time when the caller left the timestamp zero.
func (r *Request) AppendHistory(entry RequestHistory, now time.Time) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	entry.RequestID = r.ID
	r.History = append(r.History, entry)
}
