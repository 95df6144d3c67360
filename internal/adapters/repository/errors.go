package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNoSnapshot    = errors.New("no snapshot published")
	ErrStaleSnapshot = errors.New("stale snapshot")
	ErrNilSnapshot   = errors.New("nil snapshot")
)
