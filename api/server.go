// Package api - Thin HTTP layer over the quote engine.
// The API is ONLY responsible for: request decoding, engine orchestration, response serialization.
// The API NEVER performs pricing logic.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quote-pricing/core/engine"
	"quote-pricing/core/pricing"
	"quote-pricing/internal/errors"
	"quote-pricing/internal/logging"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Options configures a Server
type Options struct {
	// Version is reported by /version and in quote metadata
	Version string

	// Tables holds the constants tables quotes can select; defaults to the built-in table
	Tables *pricing.Registry

	// Quoter computes quotes; defaults to a fresh engine
	Quoter engine.Quoter

	// Metrics is the Prometheus registry served on /metrics; defaults to a private registry
	Metrics *prometheus.Registry

	// Now supplies the calendar month when a request omits it; defaults to time.Now
	Now func() time.Time
}

// Server is the API server
type Server struct {
	router   chi.Router
	tables   *pricing.Registry
	quoter   engine.Quoter
	metrics  *Metrics
	validate *validator.Validate
	version  string
	now      func() time.Time
	log      *zap.Logger
}

// NewServer creates a server with its routes registered
func NewServer(opts Options) *Server {
	if opts.Quoter == nil {
		opts.Quoter = engine.New()
	}
	if opts.Metrics == nil {
		opts.Metrics = prometheus.NewRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tables == nil {
		opts.Tables, _ = pricing.NewRegistry(pricing.Default())
	}

	s := &Server{
		router:   chi.NewRouter(),
		tables:   opts.Tables,
		quoter:   opts.Quoter,
		metrics:  NewMetrics(opts.Metrics),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		version:  opts.Version,
		now:      opts.Now,
		log:      logging.Named("api"),
	}
	s.registerRoutes(opts.Metrics)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes(reg *prometheus.Registry) {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(v chi.Router) {
		v.Post("/quotes", s.handleQuote)
		v.Post("/commission", s.handleCommission)
		v.Get("/constants", s.handleConstants)
		v.Get("/constants/versions", s.handleVersions)
		v.Get("/constants/{version}", s.handleConstants)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic serving request",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
				s.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_JSON", err.Error(), nil)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, ctx map[string]any) {
	s.writeJSON(w, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: message, Context: ctx},
		RequestID: middleware.GetReqID(r.Context()),
	}, status)
}

// writeDomainError maps error kinds to HTTP statuses:
// input errors are the caller's to fix, configuration errors are ours.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, pricing.ErrVersionNotFound) {
		s.writeError(w, r, http.StatusNotFound, "TABLE_NOT_FOUND", err.Error(), nil)
		return
	}

	var ctx map[string]any
	var de *errors.Error
	if stderrors.As(err, &de) {
		ctx = de.Context
	}

	switch errors.TypeOf(err) {
	case errors.TypeInput:
		s.writeError(w, r, http.StatusUnprocessableEntity, "INVALID_INPUT", err.Error(), ctx)
	case errors.TypeConfig:
		s.log.Error("constants table cannot serve request",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		s.writeError(w, r, http.StatusInternalServerError, "CONFIGURATION_ERROR", err.Error(), ctx)
	case errors.TypeParsing:
		s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), ctx)
	case errors.TypeNotFound:
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), ctx)
	default:
		s.log.Error("request failed", zap.Error(err))
		s.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
