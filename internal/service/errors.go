package service

import (
	"errors"
	"fmt"
)

// Common service errors.
var (
	// ErrEmptyBundle is returned when a bundle without a primary document
	// is committed to the library.
	ErrEmptyBundle = errors.New("bundle has no primary document")

	// ErrConflictOnWrite is reserved for a future optimistic-concurrency
	// scheme. The current last-write-wins policy never returns it.
	ErrConflictOnWrite = errors.New("conflicting concurrent write")
)

// MaterialServiceError is a custom error type for material service errors.
type MaterialServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for MaterialServiceError.
func (e *MaterialServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("material service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("material service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MaterialServiceError) Unwrap() error {
	return e.Err
}

// NewMaterialServiceError creates a new MaterialServiceError.
func NewMaterialServiceError(operation, message string, err error) *MaterialServiceError {
	return &MaterialServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
