package grouping

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"golang.org/x/sync/singleflight"
)

// Source is the read side of a record store.
type Source interface {
	ReadAll(ctx context.Context) ([]record.WorkItemRecord, error)
	Version(ctx context.Context) (int64, error)
}

// Cache holds the grouped cases for one store version. A value is served only
// while the store reports the version it was computed for and no Invalidate
// call happened in between.
type Cache struct {
	source Source
	logger *slog.Logger
	flight singleflight.Group

	mu         sync.Mutex
	version    int64
	generation uint64
	valid      bool
	cases      []record.Case
}

// NewCache creates a cache over source.
func NewCache(source Source, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{source: source, logger: logger}
}

// Get returns the grouped cases, regrouping when the store changed. The
// returned slice may be reordered by the caller; the cases themselves must
// be treated as read-only. Errors from the source, including
// repository.ErrNotFound for an absent store, are returned unchanged.
func (c *Cache) Get(ctx context.Context) ([]record.Case, error) {
	version, err := c.source.Version(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.valid && c.version == version {
		cases := slices.Clone(c.cases)
		c.mu.Unlock()
		return cases, nil
	}
	generation := c.generation
	c.mu.Unlock()

	key := fmt.Sprintf("%d/%d", version, generation)
	v, err, _ := c.flight.Do(key, func() (any, error) {
		rows, err := c.source.ReadAll(ctx)
		if err != nil {
			return nil, err
		}
		cases := Group(rows)
		c.logger.Debug("grouped records", "rows", len(rows), "cases", len(cases), "version", version)

		c.mu.Lock()
		if c.generation == generation {
			c.version = version
			c.cases = cases
			c.valid = true
		}
		c.mu.Unlock()
		return cases, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]record.Case)), nil
}

// Invalidate drops the cached value. Groupings already in flight are not
// stored once they complete.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.cases = nil
	c.generation++
}
