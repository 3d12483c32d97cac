package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Work item rows, kept in store order
CREATE TABLE IF NOT EXISTS work_items (
    position INTEGER PRIMARY KEY,
    case_id TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    categories TEXT NOT NULL DEFAULT '[]',
    symptoms TEXT NOT NULL DEFAULT '',
    detailed_work TEXT NOT NULL DEFAULT '',
    price INTEGER NOT NULL DEFAULT 0 CHECK(price >= 0),
    case_total_price INTEGER NOT NULL DEFAULT 0,
    model TEXT NOT NULL DEFAULT '',
    brand TEXT NOT NULL DEFAULT '',
    serial_number TEXT NOT NULL DEFAULT '',
    raw_text TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    customer_name TEXT NOT NULL DEFAULT '',
    request_details TEXT NOT NULL DEFAULT '',
    proposal_content TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_work_items_case ON work_items(case_id);

-- Store metadata; "version" exists once the store has been written
CREATE TABLE IF NOT EXISTS store_meta (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

-- Activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    case_id TEXT NOT NULL DEFAULT '',
    activity_type TEXT NOT NULL CHECK(activity_type IN ('case_created', 'case_updated', 'case_deleted')),
    summary TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_case_activity ON activity_log(case_id);
CREATE INDEX IF NOT EXISTS idx_created_at ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Open opens the database at path and runs migrations.
func Open(path string) (*DB, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
