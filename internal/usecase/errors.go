package usecase

import (
	"errors"
	"fmt"

	"cotizador_seguros/internal/domain/entities"
)

var (
	ErrMissingCustomer      = errors.New("no se ha identificado un cliente para asignar el vehículo")
	ErrToolNotFound         = errors.New("tool not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrQuoteNotReady        = errors.New("quote not processed")
	ErrSnapshotNotFound     = errors.New("risk snapshot not found")
	ErrQueueFull            = errors.New("quote queue is full")
	ErrWorkerStopped        = errors.New("quote worker stopped")
	ErrInvalidQuoteID       = errors.New("invalid quote id")
	ErrInvalidCustomerID    = errors.New("invalid customer id")

	// ErrPermanent marks pipeline errors that must not be retried.
	ErrPermanent = errors.New("permanent failure")
)

// ValidationError is a recoverable input error whose Reason is shown to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// asValidationError converts entity-level identifier errors into ValidationError.
func asValidationError(err error) error {
	var invalid *entities.InvalidIdentifierError
	if errors.As(err, &invalid) {
		return newValidationError(invalid.Field, invalid.Reason)
	}
	return err
}

// ToolNotFoundError is returned when the agent calls a tool this backend does not serve.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("Herramienta no soportada: %s", e.Tool)
}

func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// ComputationError wraps a failed pricing attempt.
type ComputationError struct {
	QuoteID string
	Attempt int
	Err     error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("quote %s attempt %d: %v", e.QuoteID, e.Attempt, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// Permanent flags err as non-retryable for the quote pipeline.
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}
