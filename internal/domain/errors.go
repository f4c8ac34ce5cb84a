package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the claim/download flow. Each conflict reason is
// distinct so handlers can render precise messages.
var (
	ErrDropNotFound   = errors.New("drop not found")
	ErrVendorNotFound = errors.New("vendor not found")
	ErrDropEnded      = errors.New("drop has ended")
	ErrDropNotStarted = errors.New("drop has not started yet")
	ErrDropExpired    = errors.New("drop has expired")
	ErrSoldOut        = errors.New("no more claims available")
	ErrAlreadyClaimed = errors.New("already claimed")
	ErrInvalidToken   = errors.New("invalid token")
	ErrBlobNotFound   = errors.New("stored file not found")
)

// ValidationError reports a missing or invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Required builds the standard "x is required" validation error.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// Invalid builds a validation error with a custom message.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
