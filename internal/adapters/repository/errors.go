package repository

import "errors"

// Sentinel kinds for catalog store errors.
var (
	ErrNotFound      = errors.New("game not found")
	ErrEmptySnapshot = errors.New("no catalog snapshot published")
	ErrDuplicate     = errors.New("duplicate game key in snapshot")
)
