package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rpggio/repairdesk/internal/watch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStoreWatcher_NotifiesOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repair_history.json")

	changes := make(chan struct{}, 10)
	w, err := watch.New(path, func() { changes <- struct{}{} }, nil, watch.WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changes:
		t.Fatal("burst produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}

	stats := w.Stats()
	require.GreaterOrEqual(t, stats.Events, 1)
	require.Equal(t, 1, stats.Notifications)
}

func TestStoreWatcher_SeesRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repair_history.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	changes := make(chan struct{}, 10)
	w, err := watch.New(path, func() { changes <- struct{}{} }, nil, watch.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	tmp := filepath.Join(dir, ".tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`[{"id":"x"}]`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification after rename")
	}
}

func TestStoreWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repair_history.json")

	changes := make(chan struct{}, 10)
	w, err := watch.New(path, func() { changes <- struct{}{} }, nil, watch.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-changes:
		t.Fatal("unrelated file triggered a notification")
	case <-time.After(300 * time.Millisecond):
	}
	require.Zero(t, w.Stats().Events)
}

func TestStoreWatcher_StopIsIdempotent(t *testing.T) {
	w, err := watch.New(filepath.Join(t.TempDir(), "store.json"), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
	w.Stop()
}
