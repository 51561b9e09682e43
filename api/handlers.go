package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quote-pricing/core/determinism"
	"quote-pricing/core/engine"
	"quote-pricing/core/output"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// cachedQuoter is implemented by quoters that can report cache hits
type cachedQuoter interface {
	QuoteCached(ctx context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, bool, error)
}

// handleQuote handles POST /api/v1/quotes
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req QuoteRequest
	if !s.decode(w, r, &req) {
		return
	}

	table, err := s.tables.Get(req.TableVersion)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	cal := types.CalendarFromTime(s.now())
	if req.CalendarMonth != nil {
		cal = types.CalendarContext{Month: *req.CalendarMonth}
	}

	result, cached, err := s.quote(r.Context(), req.Input, table, cal)
	if err != nil {
		s.metrics.Quotes.WithLabelValues(outcome(err)).Inc()
		s.writeDomainError(w, r, err)
		return
	}
	s.metrics.Quotes.WithLabelValues("ok").Inc()

	var commission *types.CommissionProjection
	if req.Commission {
		c := engine.ProjectCommission(result.Combined, table.Commission)
		commission = &c
	}

	inputHash, err := determinism.InputHash(req.Input, table.Hash(), cal.Month)
	if err != nil {
		s.log.Warn("cannot fingerprint quote input", zap.Error(err))
	}

	report := output.NewReport(result, commission, output.Metadata{
		Timestamp:    s.now().UTC().Format(time.RFC3339),
		Duration:     time.Since(start).String(),
		InputHash:    inputHash,
		TableVersion: table.Version,
		TableHash:    table.Hash().Hex(),
		Cached:       cached,
		Version:      s.version,
	})

	s.writeJSON(w, QuoteResponse{
		RequestID: middleware.GetReqID(r.Context()),
		QuoteID:   uuid.NewString(),
		Report:    *report,
	}, http.StatusOK)
}

func (s *Server) quote(ctx context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, bool, error) {
	cq, ok := s.quoter.(cachedQuoter)
	if !ok {
		result, err := s.quoter.Quote(ctx, in, table, cal)
		return result, false, err
	}

	result, hit, err := cq.QuoteCached(ctx, in, table, cal)
	if err == nil {
		if hit {
			s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		} else {
			s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}
	return result, hit, err
}

// handleCommission handles POST /api/v1/commission
func (s *Server) handleCommission(w http.ResponseWriter, r *http.Request) {
	var req CommissionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, "INVALID_INPUT", "monthly_fee and setup_fee must not be negative", nil)
		return
	}

	table, err := s.tables.Get(req.TableVersion)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	totals := types.Totals{MonthlyFee: req.MonthlyFee, SetupFee: req.SetupFee}
	s.writeJSON(w, CommissionResponse{
		TableVersion: table.Version,
		Totals:       totals,
		Commission:   engine.ProjectCommission(totals, table.Commission),
	}, http.StatusOK)
}

// handleConstants handles GET /api/v1/constants and /api/v1/constants/{version}
func (s *Server) handleConstants(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")
	if version == "" {
		version = r.URL.Query().Get("version")
	}

	table, err := s.tables.Get(version)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.writeJSON(w, ConstantsResponse{
		Version:  table.Version,
		Hash:     table.Hash().Hex(),
		Active:   table.Version == s.tables.Active().Version,
		Document: table.Document(),
	}, http.StatusOK)
}

// handleVersions handles GET /api/v1/constants/versions
func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, VersionsResponse{
		Active:   s.tables.Active().Version,
		Versions: s.tables.Versions(),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"status":        "healthy",
		"version":       s.version,
		"table_version": s.tables.Active().Version,
		"time":          s.now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "quote-pricing",
		"api_version": "v1",
	}, http.StatusOK)
}

func outcome(err error) string {
	switch errors.TypeOf(err) {
	case errors.TypeInput:
		return "input_error"
	case errors.TypeConfig:
		return "config_error"
	default:
		return "error"
	}
}
