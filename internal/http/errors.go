package httpapp

import (
	"errors"

	"dropgate/internal/domain"
)

// Conflict reasons stay 400s with their own message so clients can render
// "sold out" vs "already claimed" vs "not started" vs "expired".
func isConflict(err error) bool {
	return errors.Is(err, domain.ErrDropEnded) ||
		errors.Is(err, domain.ErrDropNotStarted) ||
		errors.Is(err, domain.ErrDropExpired) ||
		errors.Is(err, domain.ErrSoldOut) ||
		errors.Is(err, domain.ErrAlreadyClaimed) ||
		errors.Is(err, domain.ErrVendorNotFound)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrDropNotFound) ||
		errors.Is(err, domain.ErrBlobNotFound)
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken)
}
