package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrNoIngredients = errors.New("no ingredients selected")
	ErrStale         = errors.New("superseded by a newer request")
	ErrNotConfigured = errors.New("not configured")
	ErrClosed        = errors.New("closed")
)
