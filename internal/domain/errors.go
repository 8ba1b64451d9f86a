package domain

import "errors"

// Sentinel errors shared across services. Entity-specific conflicts live next
// to their entity definitions.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
)
