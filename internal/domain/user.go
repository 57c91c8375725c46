package domain

import "time"

// Role enumerates user roles within the system.
type Role string

const (
	RoleStudent        Role = "STUDENT"
	RoleInstructor     Role = "INSTRUCTOR"
	RoleAdministrative Role = "ADMINISTRATIVE"
	RoleHandler        Role = "HANDLER"
)

var roleLabels = map[Role]string{
	RoleStudent:        "Estudiante",
	RoleInstructor:     "Docente",
	RoleAdministrative: "Administrativo",
	RoleHandler:        "Responsable de atención",
}

// Label returns the human-readable description of the role.
func (r Role) Label() string {
	return roleLabels[r]
}

// IsValid reports whether the role is one of the defined values.
func (r Role) IsValid() bool {
	_, ok := roleLabels[r]
	return ok
}

// CanHandleRequests reports whether users with this role are eligible to be
// assigned as request handlers.
func (r Role) CanHandleRequests() bool {
	return r == RoleHandler || r == RoleAdministrative || r == RoleInstructor
}

// User models an account known to the user directory.
type User struct {
	ID             string
	Identification string
	FirstName      string
	LastName       string
	Email          string
	Role           Role
	PasswordHash   string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name for display and audit text.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
