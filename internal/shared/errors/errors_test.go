package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"unauthorized", NewUnauthorizedError("x"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("x"), http.StatusForbidden},
		{"rate limited", NewRateLimitedError("x"), http.StatusForbidden},
		{"quota exceeded", NewQuotaExceededError("x"), http.StatusForbidden},
		{"plan expired", NewPlanExpiredError("x"), http.StatusForbidden},
		{"feature unavailable", NewFeatureUnavailableError("x"), http.StatusForbidden},
		{"no subscription", NewNoSubscriptionError("x"), http.StatusForbidden},
		{"not exist", NewNotExistError("x"), http.StatusUnprocessableEntity},
		{"already exists", NewAlreadyExistsError("x"), http.StatusUnprocessableEntity},
		{"validation", NewValidationError("x"), http.StatusUnprocessableEntity},
		{"internal", NewInternalError("x"), http.StatusExpectationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppError_Loc(t *testing.T) {
	err := NewAlreadyExistsError("Organization name already exists").Loc("org_name", "acme", "unique")

	assert.Equal(t, "org_name", err.Field)
	assert.Equal(t, "acme", err.Input)
	assert.Equal(t, "unique", err.Hint)
	assert.Contains(t, err.Error(), "org_name")
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("failed to join organization: %w", NewQuotaExceededError("limit reached"))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeQuotaExceeded, appErr.Type)
	assert.True(t, IsType(wrapped, ErrorTypeQuotaExceeded))
	assert.False(t, IsNotExistError(wrapped))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", fmt.Errorf("Error 1062 (23000): Duplicate entry 'a' for key 'idx'"), true},
		{"sqlite", fmt.Errorf("UNIQUE constraint failed: organizations.name"), true},
		{"postgres", fmt.Errorf("ERROR: duplicate key value violates unique constraint"), true},
		{"other", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
