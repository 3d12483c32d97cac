package record

import "context"

// Store persists the flat row collection. Reads and writes are whole-collection
// operations: WriteAll replaces everything the store holds.
type Store interface {
	// ReadAll returns every row in stored order, or repository.ErrNotFound when
	// the store has never been written.
	ReadAll(ctx context.Context) ([]WorkItemRecord, error)
	// WriteAll atomically replaces the stored rows.
	WriteAll(ctx context.Context, rows []WorkItemRecord) error
	// Version changes whenever the stored rows change. It returns
	// repository.ErrNotFound when the store is absent.
	Version(ctx context.Context) (int64, error)
}
