package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity or the backing store doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when persisted data cannot be decoded
	ErrCorrupt = errors.New("stored data is malformed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
