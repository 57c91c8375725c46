package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAndStatuses(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   string
		wantStatus int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", 400},
		{NewNotFound("request", nil), "NOT_FOUND", 404},
		{NewInvalidTransition("illegal move", nil), "INVALID_TRANSITION", 422},
		{NewForbidden("closed record"), "FORBIDDEN_OPERATION", 403},
		{NewUnauthorized("bad credentials"), "UNAUTHORIZED", 401},
		{NewConflict("duplicate", nil), "CONFLICT", 409},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", 500},
	}

	for _, tc := range tests {
		de := ToDomainError(tc.err)
		require.NotNil(t, de)
		assert.Equal(t, tc.wantCode, de.Code)
		assert.Equal(t, tc.wantStatus, de.HTTPStatus)
	}
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewInvalidTransition("illegal move", map[string]any{"from": "CLOSED"})
	de := ToDomainError(original)
	assert.Same(t, original, ToDomainError(de))
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	de := ToDomainError(errors.New("disk on fire"))
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.ErrorContains(t, de, "internal server error")
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(fmt.Errorf("query: %w", pgx.ErrNoRows))
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	de := ToDomainError(NewInternalError(cause))
	assert.ErrorIs(t, de, cause)
}
