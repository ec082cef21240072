package catalog

import "errors"

// Sentinel error kinds for catalog queries.
var (
	ErrUnknownSortField = errors.New("unknown sort field")
)
