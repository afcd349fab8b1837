package service

import (
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation               = "validation_error"
	ErrCodeInvalidState             = "invalid_state"
	ErrCodeProviderUniqueIDRequired = "provider_unique_id_required"
	ErrCodeUnexpectedResult         = "unexpected_result"
	ErrCodePersistence              = "persistence_error"
	ErrCodeUnsupported              = "unsupported"
	ErrCodeGateway                  = "gateway_error"
	ErrCodeNotFound                 = "not_found"
	ErrCodeInternalError            = "internal_error"
)

// HasCode reports whether err is, or wraps, a ServiceError with the given code.
func HasCode(err error, code string) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Code == code
}

func validationError(err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Err:     err,
	}
}

func persistenceError(op string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("failed to %s", op),
		Err:     err,
	}
}

// unexpectedResult reports a gateway result that breaks the result rules or
// falls outside the status transitions. err always matches
// models.ErrUnexpectedResult.
func unexpectedResult(op string, err error) *ServiceError {
	if !errors.Is(err, models.ErrUnexpectedResult) {
		err = fmt.Errorf("%w: %w", models.ErrUnexpectedResult, err)
	}
	return &ServiceError{
		Code:    ErrCodeUnexpectedResult,
		Message: fmt.Sprintf("gateway returned an unexpected %s result", op),
		Err:     err,
	}
}
