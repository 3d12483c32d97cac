package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/estimator"
	"github.com/rpggio/repairdesk/internal/pricing"
	"github.com/rpggio/repairdesk/internal/search"
)

// CaseService defines case operations needed by MCP.
type CaseService interface {
	List(ctx context.Context, opts record.ListOptions) (record.CasePage, error)
	Get(ctx context.Context, id string) (*record.Case, error)
	EstimateFromHistory(ctx context.Context, query string) (search.Result, error)
	Calculate(in estimator.Input) (estimator.Result, error)
	Catalog() []estimator.CatalogItem
	PricingStats(ctx context.Context, opts pricing.StatsOptions) (pricing.StatsReport, error)
	MarketRates(query string) []pricing.MenuCategory
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration.
type Config struct {
	Cases    CaseService
	Activity ActivityService // optional
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "repairdesk",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, &tools{cases: cfg.Cases, activity: cfg.Activity, logger: logger})

	return server
}
