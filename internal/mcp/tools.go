package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/estimator"
	"github.com/rpggio/repairdesk/internal/pricing"
)

type tools struct {
	cases    CaseService
	activity ActivityService
	logger   *slog.Logger
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_cases",
		Description: "List past repair cases, newest first, optionally filtered by a substring",
	}, t.listCases)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_case",
		Description: "Get one repair case with its work items and raw text",
	}, t.getCase)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_similar_cases",
		Description: "Rank past cases against a description and estimate a price range from the top matches",
	}, t.searchSimilarCases)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "calculate_estimate",
		Description: "Compute a rule-based estimate with an itemized breakdown; see repairdesk://docs/estimation-rules",
	}, t.calculateEstimate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_work_catalog",
		Description: "List the work items calculate_estimate accepts, with base prices",
	}, t.listWorkCatalog)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "pricing_stats",
		Description: "Aggregate historical prices per work item name",
	}, t.pricingStats)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "market_rates",
		Description: "Look up typical market prices for common repairs",
	}, t.marketRates)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent case mutations, newest first",
	}, t.recentActivity)
}

func (t *tools) listCases(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListCasesParams) (*sdkmcp.CallToolResult, any, error) {
	sort := record.SortDesc
	if in.Sort == string(record.SortAsc) {
		sort = record.SortAsc
	}
	page, err := t.cases.List(ctx, record.ListOptions{Query: in.Query, Sort: sort, Page: in.Page, Limit: in.Limit})
	if err != nil {
		return t.errorResult("list_cases", err)
	}
	return jsonResult(page)
}

func (t *tools) getCase(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetCaseParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.cases.Get(ctx, in.ID)
	if err != nil {
		return t.errorResult("get_case", err)
	}
	return jsonResult(c)
}

func (t *tools) searchSimilarCases(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchSimilarCasesParams) (*sdkmcp.CallToolResult, any, error) {
	result, err := t.cases.EstimateFromHistory(ctx, in.Query)
	if err != nil {
		return t.errorResult("search_similar_cases", err)
	}
	return jsonResult(result)
}

func (t *tools) calculateEstimate(_ context.Context, _ *sdkmcp.CallToolRequest, in estimator.Input) (*sdkmcp.CallToolResult, any, error) {
	result, err := t.cases.Calculate(in)
	if err != nil {
		return t.errorResult("calculate_estimate", err)
	}
	return jsonResult(result)
}

func (t *tools) listWorkCatalog(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListWorkCatalogParams) (*sdkmcp.CallToolResult, any, error) {
	return jsonResult(t.cases.Catalog())
}

func (t *tools) pricingStats(ctx context.Context, _ *sdkmcp.CallToolRequest, in PricingStatsParams) (*sdkmcp.CallToolResult, any, error) {
	report, err := t.cases.PricingStats(ctx, pricing.StatsOptions{Query: in.Query, Category: in.Category})
	if err != nil {
		return t.errorResult("pricing_stats", err)
	}
	return jsonResult(report)
}

func (t *tools) marketRates(_ context.Context, _ *sdkmcp.CallToolRequest, in MarketRatesParams) (*sdkmcp.CallToolResult, any, error) {
	return jsonResult(t.cases.MarketRates(in.Query))
}

func (t *tools) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, any, error) {
	if t.activity == nil {
		return jsonResult([]activity.ActivityEntry{})
	}
	opts := activity.ListActivityOptions{CaseID: in.CaseID, Limit: in.Limit}
	if in.Type != "" {
		typ := activity.ActivityType(in.Type)
		opts.ActivityType = &typ
	}
	entries, err := t.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return t.errorResult("recent_activity", err)
	}
	return jsonResult(entries)
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult reports err as a tool error carrying the mapped APIError.
func (t *tools) errorResult(tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr := MapError(err)
	if apiErr.Code == "INTERNAL" {
		t.logger.Error("mcp tool failed", "tool", tool, "error", err)
	}
	data, mErr := json.Marshal(apiErr)
	if mErr != nil {
		return nil, nil, mErr
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
