package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/repository/mocks"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		CaseID:       "case-1",
		ActivityType: activity.TypeCaseCreated,
		Summary:      "created",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{CaseID: "case-1", Limit: activity.DefaultLimit}).
		Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{CaseID: "case-1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	require.ErrorIs(t, svc.LogActivity(ctx, nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(ctx, &activity.ActivityEntry{ActivityType: "bogus"}), activity.ErrInvalidInput)

	bogus := activity.ActivityType("bogus")
	_, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{ActivityType: &bogus})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
	repo.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestActivityService_WrapsRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, mock.Anything).Return(nil, boom)

	svc := activity.NewService(repo, nil)
	_, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{})
	require.ErrorIs(t, err, boom)
}
