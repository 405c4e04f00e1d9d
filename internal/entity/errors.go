package entity

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrValidation   = errors.New("validation failed")
)

// NotFoundError is returned whenever an id-addressed task lookup finds nothing.
type NotFoundError struct {
	ID int64
}

func NewNotFoundError(id int64) *NotFoundError {
	return &NotFoundError{ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// ValidationError reports malformed client input.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
