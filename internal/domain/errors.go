package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPoolExhausted   = errors.New("address pool exhausted")
	ErrRegistryCorrupt = errors.New("registry corrupt")
	ErrStoreConflict   = errors.New("reservation store conflict")
)
