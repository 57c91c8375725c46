package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/request-service/internal/auth"
	"github.com/spec-kit/request-service/internal/config"
	"github.com/spec-kit/request-service/internal/domain"
	"github.com/spec-kit/request-service/internal/repository"
)

type seedUser struct {
	identification string
	firstName      string
	lastName       string
	email          string
	role           domain.Role
	password       string
}

var demoUsers = []seedUser{
	{"1001234567", "Juan", "Pérez", "juan.perez@uq.edu.co", domain.RoleStudent, "123456"},
	{"1009876543", "María", "García", "maria.garcia@uq.edu.co", domain.RoleStudent, "123456"},
	{"8001234567", "Carlos", "López", "carlos.lopez@uq.edu.co", domain.RoleHandler, "123456"},
	{"9001234567", "Ana", "Martínez", "ana.martinez@uq.edu.co", domain.RoleAdministrative, "admin123"},
	{"7001234567", "Pedro", "Ramírez", "pedro.ramirez@uq.edu.co", domain.RoleInstructor, "123456"},
}

// SeedDemoData loads demo users when the directory is empty. It is a no-op
// on an already-populated store.
func SeedDemoData(ctx context.Context, users repository.UserRepository, cfg config.AuthConfig, logger *zap.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("loading demo users")
	for _, demo := range demoUsers {
		hash, err := auth.HashPassword(demo.password, cfg.BcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Identification: demo.identification,
			FirstName:      demo.firstName,
			LastName:       demo.lastName,
			Email:          demo.email,
			Role:           demo.role,
			PasswordHash:   hash,
			Active:         true,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
	}
	logger.Info("demo users loaded", zap.Int("count", len(demoUsers)))
	return nil
}
