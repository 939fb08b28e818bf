// Package errors provides application-level error types and utilities.
// Every error carries the HTTP status it maps to and, optionally, the request
// field it refers to so the transport layer can render a uniform detail payload.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeNotExist           ErrorType = "not_exist"
	ErrorTypeAlreadyExists      ErrorType = "already_exists"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeForbidden          ErrorType = "forbidden"
	ErrorTypeRateLimited        ErrorType = "rate_limited"
	ErrorTypeQuotaExceeded      ErrorType = "quota_exceeded"
	ErrorTypePlanExpired        ErrorType = "plan_expired"
	ErrorTypeFeatureUnavailable ErrorType = "feature_unavailable"
	ErrorTypeNoSubscription     ErrorType = "no_subscription"
	ErrorTypeInternal           ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"msg"`
	Code    int       `json:"-"`
	Field   string    `json:"field,omitempty"`
	Input   any       `json:"input,omitempty"`
	Hint    string    `json:"hint,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Loc attaches the offending request field, the original input and a short
// hint describing the expectation (for example "unique" or "exist").
func (e *AppError) Loc(field string, input any, hint string) *AppError {
	e.Field = field
	e.Input = input
	e.Hint = hint
	return e
}

func newError(t ErrorType, code int, message string) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
	}
}

// NewValidationError creates a new request validation error
func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, http.StatusUnprocessableEntity, message)
}

// NewNotExistError reports a referenced entity that does not exist
func NewNotExistError(message string) *AppError {
	return newError(ErrorTypeNotExist, http.StatusUnprocessableEntity, message)
}

// NewAlreadyExistsError reports a uniqueness violation
func NewAlreadyExistsError(message string) *AppError {
	return newError(ErrorTypeAlreadyExists, http.StatusUnprocessableEntity, message)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return newError(ErrorTypeUnauthorized, http.StatusUnauthorized, message)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return newError(ErrorTypeForbidden, http.StatusForbidden, message)
}

// NewRateLimitedError reports that the live token limit was reached
func NewRateLimitedError(message string) *AppError {
	return newError(ErrorTypeRateLimited, http.StatusForbidden, message)
}

// NewQuotaExceededError reports that a subscription feature ceiling was reached
func NewQuotaExceededError(message string) *AppError {
	return newError(ErrorTypeQuotaExceeded, http.StatusForbidden, message)
}

// NewPlanExpiredError creates a new plan expired error
func NewPlanExpiredError(message string) *AppError {
	return newError(ErrorTypePlanExpired, http.StatusForbidden, message)
}

// NewFeatureUnavailableError creates a new feature unavailable error
func NewFeatureUnavailableError(message string) *AppError {
	return newError(ErrorTypeFeatureUnavailable, http.StatusForbidden, message)
}

// NewNoSubscriptionError creates a new no subscription error
func NewNoSubscriptionError(message string) *AppError {
	return newError(ErrorTypeNoSubscription, http.StatusForbidden, message)
}

// NewInternalError reports a failed downstream collaborator such as mail delivery
func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, http.StatusExpectationFailed, message)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsNotExistError checks if the error is a not exist error
func IsNotExistError(err error) bool {
	return IsType(err, ErrorTypeNotExist)
}

// IsAlreadyExistsError checks if the error is an already exists error
func IsAlreadyExistsError(err error) bool {
	return IsType(err, ErrorTypeAlreadyExists)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	return false
}

// FieldErrors groups several validation failures reported together
type FieldErrors []*AppError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}
