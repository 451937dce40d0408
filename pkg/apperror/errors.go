package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindAuthentication     Kind = "authentication_failed"
	KindAuthorization      Kind = "authorization_denied"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindBadRequest         Kind = "bad_request"
	KindValidation         Kind = "validation_failed"
	KindServiceUnavailable Kind = "service_unavailable"
	KindInternal           Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches on Kind so callers can write errors.Is(err, apperror.ErrConflict).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuthentication, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindAuthorization, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusBadRequest, Kind: KindConflict, Message: "Resource already exists"}
	ErrUnavailable        = &AppError{Code: http.StatusServiceUnavailable, Kind: KindServiceUnavailable, Message: "Service unavailable"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAuthentication, Message: "Invalid credentials"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuthentication, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindAuthentication, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error. Conflicts surface as 400 so that
// clients treat them like any other rejected request.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewForbiddenError creates an authorization error with a custom message
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Kind:    KindAuthorization,
		Message: message,
	}
}

// NewUnavailableError creates a service unavailable error
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal server error",
	}
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusServiceUnavailable:
		return KindServiceUnavailable
	case http.StatusBadRequest:
		return KindBadRequest
	}
	if code >= 500 {
		return KindInternal
	}
	return KindBadRequest
}
