package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/estimator"
	"github.com/rpggio/repairdesk/internal/pricing"
	"github.com/rpggio/repairdesk/internal/search"
)

// CaseService is the case API served over HTTP.
type CaseService interface {
	List(ctx context.Context, opts record.ListOptions) (record.CasePage, error)
	Get(ctx context.Context, id string) (*record.Case, error)
	Save(ctx context.Context, in record.CaseInput) (repaircase.MutationResult, error)
	Update(ctx context.Context, id string, in record.CaseInput) (repaircase.MutationResult, error)
	Delete(ctx context.Context, id string, mode repaircase.DeleteMode) (repaircase.MutationResult, error)
	EstimateFromHistory(ctx context.Context, query string) (search.Result, error)
	Calculate(in estimator.Input) (estimator.Result, error)
	Catalog() []estimator.CatalogItem
	PricingStats(ctx context.Context, opts pricing.StatsOptions) (pricing.StatsReport, error)
	MarketRates(query string) []pricing.MenuCategory
}

// ActivityService lists the activity log.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config wires the HTTP server.
type Config struct {
	Cases    CaseService
	Activity ActivityService
	// PDFPath is the price list served by /api/raw-pdf. Empty disables it.
	PDFPath string
	// MCP, when set, is mounted at /mcp.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	cases    CaseService
	activity ActivityService
	pdfPath  string
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	srv := &Server{
		cases:    cfg.Cases,
		activity: cfg.Activity,
		pdfPath:  cfg.PDFPath,
		logger:   logger,
	}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/repairs", srv.handleListRepairs)
		r.Get("/repairs/{id}", srv.handleGetRepair)
		r.Post("/save-repair", srv.handleSaveRepair)
		r.Post("/update-repair", srv.handleUpdateRepair)
		r.Post("/delete-repair", srv.handleDeleteRepair)
		r.Get("/ai-estimate", srv.handleHistoryEstimate)
		r.Post("/estimate", srv.handleCalculate)
		r.Get("/catalog", srv.handleCatalog)
		r.Get("/pricing", srv.handlePricing)
		r.Get("/market-rates", srv.handleMarketRates)
		r.Get("/activity", srv.handleActivity)
		r.Get("/raw-pdf", srv.handleRawPDF)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
