package domain

import "errors"

// Error kinds. Service-level sentinel errors wrap one of these so handlers
// can map any error to a stable HTTP status with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrIntegrity  = errors.New("integrity error")
)
