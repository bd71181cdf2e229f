package model

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrStaleStatusUpdate = errors.New("stale status update rejected")
)

// ValidationError wraps a field-level validation failure so handlers can map
// it to 400 without inspecting message text.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error) *ValidationError {
	return &ValidationError{Err: err}
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
