package domain

import "errors"

// Error kinds surfaced by the service layer. Storage constraint violations
// are translated into these at the store boundary and never leak raw.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrExpired    = errors.New("expired")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)
