package attribute

import "errors"

// Sentinel error kinds for attribute vectors and schemas.
var (
	ErrMissingDimension = errors.New("missing attribute dimension")
	ErrUnknownDimension = errors.New("unknown attribute dimension")
	ErrRatingOutOfRange = errors.New("attribute rating out of range")
	ErrInvalidSchema    = errors.New("invalid attribute schema")
)
