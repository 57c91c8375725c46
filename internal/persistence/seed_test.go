package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/request-service/internal/config"
	"github.com/spec-kit/request-service/internal/domain"
	"github.com/spec-kit/request-service/internal/repository"
)

func TestSeedDemoDataPopulatesEmptyDirectory(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	cfg := config.AuthConfig{BcryptCost: 4}

	require.NoError(t, SeedDemoData(ctx, users, cfg, zap.NewNop()))

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	handlers, err := users.ListActiveByRole(ctx, domain.RoleHandler)
	require.NoError(t, err)
	require.Len(t, handlers, 1)
	assert.Equal(t, "Carlos", handlers[0].FirstName)
}

func TestSeedDemoDataSkipsPopulatedDirectory(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	cfg := config.AuthConfig{BcryptCost: 4}

	require.NoError(t, users.Create(ctx, &domain.User{
		Identification: "42",
		FirstName:      "Existing",
		Email:          "existing@uq.edu.co",
		Role:           domain.RoleStudent,
		Active:         true,
	}))

	require.NoError(t, SeedDemoData(ctx, users, cfg, zap.NewNop()))

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
