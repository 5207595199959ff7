package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an application error so the HTTP layer can pick a status code
type ErrorKind string

const (
	KindValidation     ErrorKind = "ValidationError"
	KindAuthentication ErrorKind = "AuthenticationError"
	KindAuthorization  ErrorKind = "AuthorizationError"
	KindNotFound       ErrorKind = "NotFoundError"
	KindConflict       ErrorKind = "ConflictError"
	KindRateLimited    ErrorKind = "RateLimitError"
	KindInternal       ErrorKind = "InternalError"
)

// AppError is the error type returned by services
type AppError struct {
	Kind    ErrorKind
	Message string
	Field   string
	Invalid []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewFieldError(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Field: field}
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInternalError wraps a store or infrastructure failure
func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// AsAppError extracts an *AppError from err, wrapping unknown errors as internal
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Internal server error", err)
}

// IsKind reports whether err is an *AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
