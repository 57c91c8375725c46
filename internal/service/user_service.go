package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/request-service/internal/auth"
	"github.com/spec-kit/request-service/internal/config"
	"github.com/spec-kit/request-service/internal/domain"
	"github.com/spec-kit/request-service/internal/repository"
	apperrors "github.com/spec-kit/request-service/pkg/util"
)

// UserService manages the user directory and login flow.
type UserService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// UserRegisterInput describes the registration payload.
type UserRegisterInput struct {
	Identification string
	FirstName      string
	LastName       string
	Email          string
	Role           domain.Role
	Password       string
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for adapters.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new user account, active by default.
func (s *UserService) Register(ctx context.Context, input UserRegisterInput) (*domain.User, error) {
	if strings.TrimSpace(input.Identification) == "" || strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperrors.NewValidationError("identification, first name, email and password required", nil)
	}
	if !input.Role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}

	if exists, err := s.users.ExistsByIdentification(ctx, input.Identification); err != nil {
		return nil, apperrors.MapError(err)
	} else if exists {
		return nil, apperrors.NewConflict("identification already registered",
			map[string]any{"identification": input.Identification})
	}
	if exists, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, apperrors.MapError(err)
	} else if exists {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Identification: input.Identification,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Role:           input.Role,
		PasswordHash:   hash,
		Active:         true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// GetByID returns one user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	result, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListByRole returns users holding the given role.
func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	result, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListActiveHandlers returns active users holding the handler role, the
// candidates for request assignment.
func (s *UserService) ListActiveHandlers(ctx context.Context) ([]domain.User, error) {
	result, err := s.users.ListActiveByRole(ctx, domain.RoleHandler)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Activate marks a user as active.
func (s *UserService) Activate(ctx context.Context, id string) (*domain.User, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate marks a user as inactive; inactive users cannot be assigned as
// handlers.
func (s *UserService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
