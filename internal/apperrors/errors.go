package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that journal debits and credits do not match within tolerance.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrInvalidState indicates an operation attempted from a transaction status that does not permit it.
var ErrInvalidState = errors.New("operation not allowed in current status")

// ErrConflict indicates the operation conflicts with the current state of a
// referenced resource (inactive account, summary account, active children).
var ErrConflict = errors.New("conflict with current resource state")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message safe to surface to callers. Repositories use it so storage errors
// never leak raw to the operation surface.
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

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
