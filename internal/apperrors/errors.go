package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRefreshFailed indicates that the rate provider was unreachable or returned unusable data.
// The previously loaded rate table stays in effect.
var ErrRefreshFailed = errors.New("exchange rate refresh failed")

// ErrPersistence indicates that the durable store could not be read or written.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is works against the sentinels above.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewPersistenceError creates an AppError wrapping ErrPersistence and the underlying cause.
func NewPersistenceError(message string, cause error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, errors.Join(ErrPersistence, cause))
}

// NewRefreshError creates an AppError wrapping ErrRefreshFailed and the underlying cause.
func NewRefreshError(message string, cause error) *AppError {
	if cause == nil {
		return NewAppError(http.StatusBadGateway, message, ErrRefreshFailed)
	}
	return NewAppError(http.StatusBadGateway, message, errors.Join(ErrRefreshFailed, cause))
}
