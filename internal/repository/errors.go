package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested id or email.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)
