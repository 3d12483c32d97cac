package repaircase

import "errors"

var (
	// ErrCaseNotFound indicates no stored row carries the requested case id.
	ErrCaseNotFound = errors.New("case not found")
	// ErrStoreNotFound indicates the record store has never been written.
	ErrStoreNotFound = errors.New("repair history not found")
	// ErrQueryRequired indicates a history estimate was requested without a query.
	ErrQueryRequired = errors.New("query is required")
	// ErrInvalidDeleteMode indicates an unknown delete mode.
	ErrInvalidDeleteMode = errors.New("invalid delete mode")
)
