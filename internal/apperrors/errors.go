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

// ErrIllegalTransition indicates that the requested status change is not a
// legal edge of the workflow for the record's subject type.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrForbidden indicates that the acting role is not authorized for the
// requested operation or workflow edge.
var ErrForbidden = errors.New("forbidden")

// ErrReasonRequired indicates that a rejection was attempted without a reason.
var ErrReasonRequired = errors.New("a non-empty reason is required")

// ErrLocked indicates a write attempted outside the attendance mutability window.
var ErrLocked = errors.New("submission window is closed")

// ErrInventoryNotFound indicates that no inventory record matches both the
// item id and the location key carried by an approved request. It wraps
// ErrNotFound so callers checking the broader class still match.
var ErrInventoryNotFound = fmt.Errorf("inventory record: %w", ErrNotFound)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Repositories use it for infrastructure failures that are not part of the
// domain error taxonomy above.
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
