package dto

import "errors"

var (
	ErrInternalFailure     = errors.New("internal failure")
	ErrNotFound            = errors.New("not found")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrInconsistentCounter = errors.New("inconsistent trip counter")
)
