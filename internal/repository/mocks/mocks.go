package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/repository"
)

var (
	_ repository.RecordStore        = (*RecordStore)(nil)
	_ repository.ActivityRepository = (*ActivityRepository)(nil)
)

// RecordStore is a mock for repository.RecordStore.
type RecordStore struct {
	mock.Mock
}

func (m *RecordStore) ReadAll(ctx context.Context) ([]record.WorkItemRecord, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]record.WorkItemRecord); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordStore) WriteAll(ctx context.Context, rows []record.WorkItemRecord) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *RecordStore) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if entries, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
