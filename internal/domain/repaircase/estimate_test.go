package repaircase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/estimator"
	"github.com/rpggio/repairdesk/internal/pricing"
	"github.com/rpggio/repairdesk/internal/repository/mocks"
)

func TestService_EstimateFromHistory(t *testing.T) {
	ctx := context.Background()
	svc, store := newJSONService(t)

	_, err := svc.EstimateFromHistory(ctx, "   ")
	require.ErrorIs(t, err, repaircase.ErrQueryRequired)

	_, err = svc.EstimateFromHistory(ctx, "ナット")
	require.ErrorIs(t, err, repaircase.ErrStoreNotFound)

	require.NoError(t, store.WriteAll(ctx, []record.WorkItemRecord{
		{ID: "a", Symptoms: "ナット割れ", DetailedWork: "ナット交換", Price: 10000},
		{ID: "b", DetailedWork: "ナット調整", Price: 4000},
		{ID: "c", DetailedWork: "配線修理", Price: 6000},
	}))

	result, err := svc.EstimateFromHistory(ctx, "ナット")
	require.NoError(t, err)
	require.NotNil(t, result.Estimate)
	require.Equal(t, int64(4000), result.Estimate.Min)
	require.Equal(t, int64(10000), result.Estimate.Max)
	require.Equal(t, int64(7000), result.Estimate.Avg)
	require.Len(t, result.SimilarCases, 2)
	require.Equal(t, "a", result.SimilarCases[0].ID)

	result, err = svc.EstimateFromHistory(ctx, "ピックアップ")
	require.NoError(t, err)
	require.Nil(t, result.Estimate)
	require.Empty(t, result.SimilarCases)
}

func TestService_EstimatePunctuationSkipsStore(t *testing.T) {
	store := &mocks.RecordStore{}
	svc := repaircase.NewService(store, nil, nil)

	result, err := svc.EstimateFromHistory(context.Background(), "、。/")
	require.NoError(t, err)
	require.Nil(t, result.Estimate)
	require.NotNil(t, result.SimilarCases)
	store.AssertNotCalled(t, "ReadAll", mock.Anything)
}

func TestService_PricingStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newJSONService(t)

	report, err := svc.PricingStats(ctx, pricing.StatsOptions{})
	require.NoError(t, err)
	require.Empty(t, report.Items)

	_, err = svc.Save(ctx, validInput())
	require.NoError(t, err)

	report, err = svc.PricingStats(ctx, pricing.StatsOptions{Query: "ナット"})
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	require.Equal(t, int64(10000), report.Items[0].Avg)
	require.Equal(t, []string{record.DefaultCategory}, report.Categories)
}

func TestService_CalculatorsPassThrough(t *testing.T) {
	svc, _ := newJSONService(t)

	require.Len(t, svc.Catalog(), 7)
	require.Len(t, svc.MarketRates(""), 6)

	_, err := svc.Calculate(estimator.Input{})
	require.ErrorIs(t, err, estimator.ErrInvalidInput)
}
