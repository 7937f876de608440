package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record or collection key does not exist.
	ErrNotFound = errors.New("persistence: not found")
)
