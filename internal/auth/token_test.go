package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.RoleHandler)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleHandler, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken("user-1", domain.RoleStudent)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 30).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", 30).ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("123456", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.NoError(t, ComparePassword(hash, "123456"))
	assert.Error(t, ComparePassword(hash, "654321"))
}
