// Package repaircase orchestrates the record store, the grouped case view,
// history search and the price calculators.
package repaircase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/grouping"
	"github.com/rpggio/repairdesk/internal/repository"
)

// Service handles repair case business logic.
type Service struct {
	store      record.Store
	cases      *grouping.Cache
	activities activity.Repository
	logger     *slog.Logger
	newID      func() string
}

// NewService creates a new case service. activities may be nil.
func NewService(store record.Store, activities activity.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:      store,
		cases:      grouping.NewCache(store, logger),
		activities: activities,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// InvalidateCache drops the grouped view, e.g. after an external edit of
// the store.
func (s *Service) InvalidateCache() {
	s.cases.Invalidate()
}

// Save stores a new case, one row per work item, ahead of existing rows.
func (s *Service) Save(ctx context.Context, in record.CaseInput) (MutationResult, error) {
	if err := record.ValidateCaseInput(in); err != nil {
		return MutationResult{}, err
	}

	existing, err := s.readRows(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return MutationResult{}, err
	}

	id := s.newID()
	fresh := record.BuildRows(id, in)
	if err := s.writeRows(ctx, append(fresh, existing...)); err != nil {
		return MutationResult{}, err
	}

	s.logger.Info("case saved", "id", id, "items", len(fresh))
	s.logActivity(ctx, activity.TypeCaseCreated, id, fmt.Sprintf("Saved case for %s (%s)", in.CustomerName, in.Model), map[string]any{
		"count": len(fresh),
		"total": record.SumPrices(in.WorkItems),
	})
	return MutationResult{ID: id, Count: len(fresh)}, nil
}

// Update replaces every row of case id with rows built from in. The new rows
// go ahead of the remaining ones.
func (s *Service) Update(ctx context.Context, id string, in record.CaseInput) (MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MutationResult{}, fmt.Errorf("%w: id is required", record.ErrInvalidInput)
	}
	if err := record.ValidateCaseInput(in); err != nil {
		return MutationResult{}, err
	}

	existing, err := s.readRows(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return MutationResult{}, ErrCaseNotFound
	}
	if err != nil {
		return MutationResult{}, err
	}

	kept := make([]record.WorkItemRecord, 0, len(existing))
	for _, row := range existing {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(existing) {
		return MutationResult{}, ErrCaseNotFound
	}

	fresh := record.BuildRows(id, in)
	if err := s.writeRows(ctx, append(fresh, kept...)); err != nil {
		return MutationResult{}, err
	}

	s.logger.Info("case updated", "id", id, "removed", len(existing)-len(kept), "items", len(fresh))
	s.logActivity(ctx, activity.TypeCaseUpdated, id, fmt.Sprintf("Updated case for %s (%s)", in.CustomerName, in.Model), map[string]any{
		"removed": len(existing) - len(kept),
		"count":   len(fresh),
	})
	return MutationResult{ID: id, Count: len(fresh)}, nil
}

// Delete removes the rows of case id according to mode and returns how many
// rows were removed.
func (s *Service) Delete(ctx context.Context, id string, mode DeleteMode) (MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MutationResult{}, fmt.Errorf("%w: id is required", record.ErrInvalidInput)
	}
	if mode != DeleteByID && mode != DeleteByRawText {
		return MutationResult{}, fmt.Errorf("%w: %q", ErrInvalidDeleteMode, mode)
	}

	existing, err := s.readRows(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return MutationResult{}, ErrCaseNotFound
	}
	if err != nil {
		return MutationResult{}, err
	}

	rawTexts := make(map[string]struct{})
	if mode == DeleteByRawText {
		for _, row := range existing {
			if row.ID == id {
				rawTexts[row.RawText] = struct{}{}
			}
		}
	}

	kept := make([]record.WorkItemRecord, 0, len(existing))
	for _, row := range existing {
		if row.ID == id {
			continue
		}
		if _, shared := rawTexts[row.RawText]; shared {
			continue
		}
		kept = append(kept, row)
	}
	removed := len(existing) - len(kept)
	if removed == 0 {
		return MutationResult{}, ErrCaseNotFound
	}

	if err := s.writeRows(ctx, kept); err != nil {
		return MutationResult{}, err
	}

	s.logger.Info("case deleted", "id", id, "mode", mode, "removed", removed)
	s.logActivity(ctx, activity.TypeCaseDeleted, id, fmt.Sprintf("Deleted %d rows", removed), map[string]any{
		"mode":    mode,
		"removed": removed,
	})
	return MutationResult{ID: id, Count: removed}, nil
}

// Get returns the grouped case containing the rows of id.
func (s *Service) Get(ctx context.Context, id string) (*record.Case, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrCaseNotFound
	}
	cases, err := s.groupedCases(ctx)
	if errors.Is(err, ErrStoreNotFound) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].ID == id {
			c := cases[i]
			return &c, nil
		}
	}

	// The id may belong to a row merged into a case represented by another id.
	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	for _, row := range rows {
		if row.ID != id {
			continue
		}
		signature := grouping.Signature(row.RawText)
		for i := range cases {
			if grouping.Signature(cases[i].RawText) == signature {
				c := cases[i]
				return &c, nil
			}
		}
	}
	return nil, ErrCaseNotFound
}

func (s *Service) readRows(ctx context.Context) ([]record.WorkItemRecord, error) {
	rows, err := s.store.ReadAll(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("reading repair history: %w", err)
	}
	return rows, nil
}

func (s *Service) writeRows(ctx context.Context, rows []record.WorkItemRecord) error {
	err := s.store.WriteAll(ctx, rows)
	s.cases.Invalidate()
	if err != nil {
		return fmt.Errorf("writing repair history: %w", err)
	}
	return nil
}

// groupedCases maps an absent store to ErrStoreNotFound.
func (s *Service) groupedCases(ctx context.Context) ([]record.Case, error) {
	cases, err := s.cases.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("grouping cases: %w", err)
	}
	return cases, nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.ActivityType, caseID, summary string, details map[string]any) {
	if s.activities == nil {
		return
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		encoded = nil
	}
	if err := s.activities.Log(ctx, &activity.ActivityEntry{
		CaseID:       caseID,
		ActivityType: typ,
		Summary:      summary,
		Details:      string(encoded),
	}); err != nil {
		s.logger.Warn("failed to log activity", "type", typ, "case_id", caseID, "error", err)
	}
}
