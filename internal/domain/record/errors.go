package record

import "errors"

var (
	// ErrInvalidInput indicates a save or update request is missing required data.
	ErrInvalidInput = errors.New("invalid case input")
)
