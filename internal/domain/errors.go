package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrValidation          = errors.New("validation error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrPrecondition        = errors.New("precondition failed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Specific failures. Each one matches its own sentinel and the family above
// it, so callers can test either errors.Is(err, ErrQuotaExceeded) or
// errors.Is(err, ErrPrecondition).
var (
	ErrNotOwner           = fmt.Errorf("caller does not own the request: %w", ErrForbidden)
	ErrQuotaExceeded      = fmt.Errorf("daily request quota exceeded: %w", ErrPrecondition)
	ErrInsufficientPoints = fmt.Errorf("insufficient points: %w", ErrPrecondition)
	ErrRequestNotActive   = fmt.Errorf("request is not active: %w", ErrPrecondition)
	ErrAlreadyDecided     = fmt.Errorf("request already has a decision: %w", ErrPrecondition)
	ErrAlreadyCheckedIn   = fmt.Errorf("already checked in today: %w", ErrPrecondition)
	ErrResponseNotFound   = fmt.Errorf("response: %w", ErrNotFound)
	ErrUpstreamTimeout    = fmt.Errorf("upstream timeout: %w", ErrUpstreamUnavailable)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
