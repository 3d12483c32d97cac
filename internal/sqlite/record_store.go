package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/repository"
)

const versionKey = "version"

var (
	_ repository.RecordStore        = (*RecordStore)(nil)
	_ repository.ActivityRepository = (*ActivityRepository)(nil)
)

// RecordStore implements repository.RecordStore for SQLite
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// ReadAll returns every row ordered by position
func (s *RecordStore) ReadAll(ctx context.Context) ([]record.WorkItemRecord, error) {
	if _, err := s.Version(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT
			case_id, category, categories, symptoms, detailed_work, price,
			case_total_price, model, brand, serial_number, raw_text, date,
			customer_name, request_details, proposal_content
		FROM work_items
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read work items: %w", err)
	}
	defer rows.Close()

	out := []record.WorkItemRecord{}
	for rows.Next() {
		var row record.WorkItemRecord
		var categories string
		if err := rows.Scan(
			&row.ID,
			&row.Category,
			&categories,
			&row.Symptoms,
			&row.DetailedWork,
			&row.Price,
			&row.CaseTotalPrice,
			&row.Model,
			&row.Brand,
			&row.SerialNumber,
			&row.RawText,
			&row.Date,
			&row.CustomerName,
			&row.RequestDetails,
			&row.ProposalContent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work item: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &row.Categories); err != nil {
			return nil, fmt.Errorf("%w: categories of work item: %v", repository.ErrCorrupt, err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work item rows: %w", err)
	}

	return out, nil
}

// WriteAll replaces every row in one transaction and bumps the version
func (s *RecordStore) WriteAll(ctx context.Context, rows []record.WorkItemRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_items`); err != nil {
		return fmt.Errorf("failed to clear work items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO work_items (
			position, case_id, category, categories, symptoms, detailed_work,
			price, case_total_price, model, brand, serial_number, raw_text,
			date, customer_name, request_details, proposal_content
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		categories, err := json.Marshal(row.Categories)
		if err != nil {
			return fmt.Errorf("failed to encode categories: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			i,
			row.ID,
			row.Category,
			string(categories),
			row.Symptoms,
			row.DetailedWork,
			row.Price,
			row.CaseTotalPrice,
			row.Model,
			row.Brand,
			row.SerialNumber,
			row.RawText,
			row.Date,
			row.CustomerName,
			row.RequestDetails,
			row.ProposalContent,
		); err != nil {
			return fmt.Errorf("failed to insert work item %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO store_meta (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1
	`, versionKey); err != nil {
		return fmt.Errorf("failed to bump store version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit work items: %w", err)
	}
	return nil
}

// Version returns the write counter, or repository.ErrNotFound before the
// first write
func (s *RecordStore) Version(ctx context.Context) (int64, error) {
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM store_meta WHERE key = ?`, versionKey).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read store version: %w", err)
	}
	return version, nil
}
