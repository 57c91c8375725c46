package dto

import (
	"time"

	"github.com/spec-kit/request-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Identification string `json:"identification"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Password       string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse exposes directory information without credentials.
type UserResponse struct {
	ID             string    `json:"id"`
	Identification string    `json:"identification"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	RoleLabel      string    `json:"role_label"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromUser maps a domain user to its response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Identification: user.Identification,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		Email:          user.Email,
		Role:           string(user.Role),
		RoleLabel:      user.Role.Label(),
		Active:         user.Active,
		CreatedAt:      user.CreatedAt,
	}
}
