package models

import (
	"errors"
	"fmt"
)

// Domain errors that can be returned by stores and value objects
var (
	// ErrNotFound indicates the requested card or transaction was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a card with the same provider unique id is already stored
	ErrDuplicate = errors.New("duplicate record")

	// ErrValidation is matched by every ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrUnexpectedResult indicates a gateway result combination outside the transition table
	ErrUnexpectedResult = errors.New("unexpected gateway result")
)

// ValidationError reports a field that failed format or range validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is reports ErrValidation as matching so callers can test the error kind
// without knowing the field.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
