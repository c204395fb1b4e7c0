package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of application errors
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeAuthorization  ErrorType = "authorization"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeConflict       ErrorType = "conflict"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeInternal       ErrorType = "internal"
	ErrorTypeExternal       ErrorType = "external"
)

// AppError represents a structured application error. For errors raised from
// backend responses, StatusCode carries the HTTP status of the response.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code"`
	Internal   error                  `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthorization,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewRateLimitError creates a new rate limit error
func NewRateLimitError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// FromStatusCode maps a non-2xx backend response to a typed error. The
// original status code is preserved on the returned error.
func FromStatusCode(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}

	var errType ErrorType
	switch {
	case status == http.StatusUnauthorized:
		errType = ErrorTypeAuthentication
	case status == http.StatusForbidden:
		errType = ErrorTypeAuthorization
	case status == http.StatusNotFound:
		errType = ErrorTypeNotFound
	case status == http.StatusConflict:
		errType = ErrorTypeConflict
	case status == http.StatusTooManyRequests:
		errType = ErrorTypeRateLimit
	case status >= 400 && status < 500:
		errType = ErrorTypeValidation
	default:
		errType = ErrorTypeExternal
	}

	return &AppError{
		Type:       errType,
		Message:    message,
		StatusCode: status,
	}
}

// IsAuthError reports whether err (or any error it wraps) is a 401 from the
// backend.
func IsAuthError(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbiddenError reports whether err (or any error it wraps) is a 403 from
// the backend.
func IsForbiddenError(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusForbidden
	}
	return false
}
