package service

import "errors"

// Sentinel error kinds returned by the service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrInvalidQuery = errors.New("invalid query")
	ErrNoCatalog    = errors.New("no catalog source configured")
)
