package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValidityWindow the mission order starts after it ends
	ErrInvalidValidityWindow = errors.New("start date must not be after end date")
	// ErrAssignmentNotFound the mission order does not exist
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrAssignmentNumberExhausted every generated assignment number collided with a stored one
	ErrAssignmentNumberExhausted = errors.New("could not generate a unique assignment number")
	// ErrVerificationUnavailable the store could not be read or written during a verification
	ErrVerificationUnavailable = errors.New("verification unavailable")
)

// ValidationError is returned when a required request field is missing or malformed
type ValidationError struct {
	Field   string
	Message string
}

// Error satisfies error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newRequiredFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}
