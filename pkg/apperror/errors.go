// Package apperror holds the error taxonomy shared by repositories, services and handlers.
// Lower layers wrap these sentinels with context; handlers map them to HTTP statuses with errors.Is.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the referenced id or slug does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means malformed or out-of-range input. Raised before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrConstraintViolation means a unique, foreign key or check constraint rejected the write.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrAssetUpload means blob storage refused an upload during create/update.
	ErrAssetUpload = errors.New("asset upload failed")

	// ErrInvalidTransition means a booking status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError carries per-field messages and matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Field builds a ValidationError for a single field.
func Field(name, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{name: message}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
