package grouping

import (
	"context"
	"sync"
	"testing"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	rows    []record.WorkItemRecord
	version int64
	missing bool
	reads   int
}

func (f *fakeSource) ReadAll(context.Context) ([]record.WorkItemRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return append([]record.WorkItemRecord(nil), f.rows...), nil
}

func (f *fakeSource) Version(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing {
		return 0, repository.ErrNotFound
	}
	return f.version, nil
}

func (f *fakeSource) set(rows []record.WorkItemRecord, version int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
	f.version = version
}

func TestCache_ReusesUntilVersionChanges(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{}
	src.set([]record.WorkItemRecord{{DetailedWork: "a", RawText: "t1"}}, 1)
	cache := NewCache(src, nil)

	cases, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	_, err = cache.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, src.reads)

	src.set([]record.WorkItemRecord{{DetailedWork: "a", RawText: "t1"}, {DetailedWork: "b", RawText: "t2"}}, 2)
	cases, err = cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Equal(t, 2, src.reads)
}

func TestCache_InvalidateWithUnchangedVersion(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{}
	src.set([]record.WorkItemRecord{{DetailedWork: "a", RawText: "t1"}}, 7)
	cache := NewCache(src, nil)

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	// A write inside the same timestamp tick leaves the version unchanged.
	src.set(nil, 7)
	cache.Invalidate()

	cases, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, cases)
}

func TestCache_CallerReorderDoesNotLeak(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{}
	src.set([]record.WorkItemRecord{
		{DetailedWork: "a", RawText: "t1"},
		{DetailedWork: "b", RawText: "t2"},
	}, 1)
	cache := NewCache(src, nil)

	cases, err := cache.Get(ctx)
	require.NoError(t, err)
	cases[0], cases[1] = cases[1], cases[0]

	again, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", again[0].WorkItems[0].Name)
}

func TestCache_MissingStore(t *testing.T) {
	cache := NewCache(&fakeSource{missing: true}, nil)
	_, err := cache.Get(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}
