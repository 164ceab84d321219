// Package apperror provides structured error handling for the dashboard.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes grouped by failure class
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"

	// Upstream (backend collaborator) errors
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamDenied      = "UPSTREAM_DENIED"

	// Validation errors (400), resolved locally without any network call
	CodeValidation    = "VALIDATION_ERROR"
	CodeMissingFields = "MISSING_REQUIRED_FIELDS"

	// Conflict errors (409), detected via a precedent lookup call
	CodeConflict      = "CONFLICT"
	CodeDeleteBlocked = "DELETE_BLOCKED"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the service.
// It implements the error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, blocking rows, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewMissingFields creates an error for absent required fields (400)
func NewMissingFields(fields []string) *AppError {
	return &AppError{
		Code:       CodeMissingFields,
		Message:    "Please fill all the required fields",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"fields": fields},
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDeleteBlocked creates an error for a delete prevented by dependent records (409)
func NewDeleteBlocked(entity string, id any, blockedBy string) *AppError {
	article := "a"
	if len(blockedBy) > 0 && strings.ContainsRune("aeiou", rune(blockedBy[0])) {
		article = "an"
	}
	return &AppError{
		Code:       CodeDeleteBlocked,
		Message:    fmt.Sprintf("There is %s %s associated with this %s", article, blockedBy, entity),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id, "blockedBy": blockedBy},
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewUpstreamDenied wraps an authorization sentinel returned by the backend
// collaborator. The sentinel phrase is preserved verbatim for display.
func NewUpstreamDenied(phrase string) *AppError {
	return &AppError{
		Code:       CodeUpstreamDenied,
		Message:    phrase,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewUpstreamUnavailable creates an error for transport failures or malformed
// responses from the backend collaborator (502). Never treated as empty data.
func NewUpstreamUnavailable(err error) *AppError {
	return &AppError{
		Code:       CodeUpstreamUnavailable,
		Message:    "Backend service is unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsConflict checks if error is CodeConflict or CodeDeleteBlocked
func IsConflict(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeConflict || appErr.Code == CodeDeleteBlocked
	}
	return false
}

// IsUpstreamUnavailable checks if error is CodeUpstreamUnavailable
func IsUpstreamUnavailable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeUpstreamUnavailable
	}
	return false
}
