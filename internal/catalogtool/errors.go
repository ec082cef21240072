package catalogtool

import "errors"

// Sentinel errors returned by Run.
var (
	ErrNoInput      = errors.New("either -catalog or -generate is required")
	ErrVerification = errors.New("catalog verification failed")
	ErrUnknownGame  = errors.New("game not found")
)
