package ports

import "errors"

var (
	// ErrNotFound is returned by a FiefdomStore accessor when the row does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an optimistic-concurrency write loses a
	// race: the row's version no longer matches the one the caller read.
	ErrConflict = errors.New("conflict")
)
