// Package jsonstore keeps work item rows in a single JSON array file.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/repository"
)

// writeMu serializes writers within the process, across every Store value.
var writeMu sync.Mutex

var _ repository.RecordStore = (*Store)(nil)

// Store implements repository.RecordStore on top of a JSON file.
type Store struct {
	path string
}

// New returns a store backed by the file at path. The file is created on the
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// ReadAll decodes every row in file order.
func (s *Store) ReadAll(ctx context.Context) ([]record.WorkItemRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []record.WorkItemRecord{}, nil
	}

	var rows []record.WorkItemRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", repository.ErrCorrupt, s.path, err)
	}
	if rows == nil {
		rows = []record.WorkItemRecord{}
	}
	return rows, nil
}

// WriteAll replaces the file contents. The rows are written to a temporary
// file in the same directory and renamed over the target.
func (s *Store) WriteAll(ctx context.Context, rows []record.WorkItemRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rows == nil {
		rows = []record.WorkItemRecord{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	committed = true
	return nil
}

// Version returns the file modification time in nanoseconds.
func (s *Store) Version(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", s.path, err)
	}
	return info.ModTime().UnixNano(), nil
}
