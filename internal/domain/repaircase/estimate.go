package repaircase

import (
	"context"
	"errors"
	"strings"

	"github.com/rpggio/repairdesk/internal/estimator"
	"github.com/rpggio/repairdesk/internal/pricing"
	"github.com/rpggio/repairdesk/internal/repository"
	"github.com/rpggio/repairdesk/internal/search"
)

// EstimateFromHistory ranks past cases against query and summarizes their
// prices. A query without keywords returns the empty result without reading
// the store.
func (s *Service) EstimateFromHistory(ctx context.Context, query string) (search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return search.Result{}, ErrQueryRequired
	}
	tokens := search.Tokenize(query)
	if len(tokens) == 0 {
		return search.EmptyResult(), nil
	}

	rows, err := s.readRows(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return search.Result{}, ErrStoreNotFound
	}
	if err != nil {
		return search.Result{}, err
	}

	result := search.Estimate(rows, tokens)
	s.logger.Debug("history estimate", "tokens", len(tokens), "matches", len(result.SimilarCases))
	return result, nil
}

// Calculate runs the rule-based estimator.
func (s *Service) Calculate(in estimator.Input) (estimator.Result, error) {
	return estimator.Calculate(in)
}

// Catalog lists the work items the estimator prices.
func (s *Service) Catalog() []estimator.CatalogItem {
	return estimator.Catalog()
}

// PricingStats aggregates past work item prices across grouped cases. An
// absent store yields an empty report.
func (s *Service) PricingStats(ctx context.Context, opts pricing.StatsOptions) (pricing.StatsReport, error) {
	cases, err := s.groupedCases(ctx)
	if err != nil && !errors.Is(err, ErrStoreNotFound) {
		return pricing.StatsReport{}, err
	}
	return pricing.WorkStats(cases, opts), nil
}

// MarketRates returns the market-rate menu entries relevant to query.
func (s *Service) MarketRates(query string) []pricing.MenuCategory {
	return pricing.MarketRates(query)
}
