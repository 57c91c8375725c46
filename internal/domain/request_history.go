package domain

import "time"

// RequestHistory is an immutable audit trail entry recording one mutating
// action on a request. Entries are never edited or removed; RequestID is a
// non-owning back-reference to the owning request.
type RequestHistory struct {
	ID        string
	RequestID string
	Timestamp time.Time
	Action    string
	ActorID   string
	Note      string
}
