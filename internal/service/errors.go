package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by services and mapped to HTTP statuses by handlers.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidToken         = errors.New("invalid token")
	ErrGeneratorUnavailable = errors.New("meal plan generator is not configured")
	ErrStorageUnavailable   = errors.New("storage is not configured")
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
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// GeneratorError carries the message of a generator that refused a request.
type GeneratorError struct {
	Message string
}

func (e *GeneratorError) Error() string {
	return e.Message
}
