package loader

import "errors"

// Sentinel error kinds for catalog loading.
var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidGame       = errors.New("invalid game")
	ErrDuplicate         = errors.New("duplicate game")
	ErrRankSequence      = errors.New("ranks are not dense over 1..N")
	ErrScoreMismatch     = errors.New("stored score does not match derived score")
)
