package transport

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/domain/repaircase"
	"github.com/rpggio/repairdesk/internal/estimator"
	"github.com/rpggio/repairdesk/internal/pricing"
)

type mutationResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	ID      string `json:"id,omitempty"`
}

type updateRequest struct {
	ID string `json:"id"`
	record.CaseInput
}

type deleteRequest struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
}

// queryInt parses an integer query parameter; absent or malformed values
// yield 0 so defaults apply.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) handleListRepairs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort := record.SortDesc
	if q.Get("sort") == string(record.SortAsc) {
		sort = record.SortAsc
	}
	page, err := s.cases.List(r.Context(), record.ListOptions{
		Query: q.Get("q"),
		Sort:  sort,
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetRepair(w http.ResponseWriter, r *http.Request) {
	c, err := s.cases.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSaveRepair(w http.ResponseWriter, r *http.Request) {
	var in record.CaseInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	res, err := s.cases.Save(r.Context(), in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Count: res.Count, ID: res.ID})
}

func (s *Server) handleUpdateRepair(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	res, err := s.cases.Update(r.Context(), req.ID, req.CaseInput)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Count: res.Count})
}

func (s *Server) handleDeleteRepair(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	mode, err := repaircase.ParseDeleteMode(req.Mode)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	res, err := s.cases.Delete(r.Context(), req.ID, mode)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Count: res.Count})
}

func (s *Server) handleHistoryEstimate(w http.ResponseWriter, r *http.Request) {
	result, err := s.cases.EstimateFromHistory(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in estimator.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	result, err := s.cases.Calculate(in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cases.Catalog())
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	report, err := s.cases.PricingStats(r.Context(), pricing.StatsOptions{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMarketRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cases.MarketRates(r.URL.Query().Get("q")))
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if s.activity == nil {
		writeJSON(w, http.StatusOK, []activity.ActivityEntry{})
		return
	}
	opts := activity.ListActivityOptions{
		CaseID: r.URL.Query().Get("case_id"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		t := activity.ActivityType(typ)
		opts.ActivityType = &t
	}
	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleRawPDF streams the configured price list. Range requests are
// answered by http.ServeContent.
func (s *Server) handleRawPDF(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(s.pdfPath) == "" {
		writeErrorMessage(w, http.StatusNotFound, "PDF not configured")
		return
	}
	f, err := os.Open(s.pdfPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("opening price list failed", "path", s.pdfPath, "error", err)
		}
		writeErrorMessage(w, http.StatusNotFound, "PDF not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeErrorMessage(w, http.StatusNotFound, "PDF not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
