// Package api is the HTTP dispatch layer: it maps GET routes to the dataset
// aggregation functions, validates parameters and renders JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dara-analytics/dara/internal/config"
	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/monitoring"
	"github.com/dara-analytics/dara/internal/shape"
	"github.com/dara-analytics/dara/internal/store"
)

// Version is reported by / and the documentation endpoints.
const Version = "1.0"

// Source supplies the loaded datasets. *store.Once satisfies it.
type Source interface {
	Get(ctx context.Context) (*store.Store, error)
}

// Server routes requests to the aggregation functions.
type Server struct {
	source    Source
	cfg       config.ServerConfig
	logger    *slog.Logger
	collector *monitoring.Collector
	routes    []Route
	handler   http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCollector records every request in c and mounts the /metrics endpoints.
func WithCollector(c *monitoring.Collector) Option {
	return func(s *Server) {
		s.collector = c
	}
}

// New builds the handler chain for src.
func New(src Source, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		source: src,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		routes: Routes(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/docs", s.handleDocs)
	mux.HandleFunc("GET /api/docs/detailed", s.handleDetailedDocs)
	for _, rt := range s.routes {
		mux.Handle(rt.Pattern(), s.dispatch(rt))
	}
	if s.collector != nil {
		metrics := monitoring.NewHandler(s.collector)
		mux.Handle("/metrics", metrics)
		mux.Handle("/metrics/", metrics)
	}
	mux.HandleFunc("/", s.handleNotFound)

	s.handler = s.middleware(mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Routes returns the query routes the server dispatches.
func (s *Server) Routes() []Route {
	return s.routes
}

func (s *Server) dispatch(rt Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, err := parseArgs(r, rt.Params)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		st, err := s.source.Get(r.Context())
		if err != nil {
			s.writeError(w, r, fmt.Errorf("datasets unavailable: %w", err))
			return
		}

		result, err := rt.query(st, a)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, result)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	st, err := s.source.Get(r.Context())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("datasets unavailable: %w", err))
		return
	}
	sum := st.Olympics.Summary()
	s.writeJSON(w, r, http.StatusOK, shape.Record{}.
		Set("message", "🏅 Olympic Data API - Welcome!").
		Set("version", Version).
		Set("total_records", sum.TotalRecords).
		Set("years_covered", fmt.Sprintf("%d - %d", sum.FirstYear, sum.LastYear)).
		Set("total_athletes", sum.TotalAthletes).
		Set("total_countries", sum.TotalCountries).
		Set("documentation", "/api/docs").
		Set("health_check", "/health"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st, err := s.source.Get(r.Context())
	if err != nil {
		s.logger.Error("health check failed", "error", err)
		s.writeJSON(w, r, http.StatusServiceUnavailable, shape.Record{}.
			Set("status", "unhealthy").
			Set("dataset_loaded", false).
			Set("error", err.Error()))
		return
	}
	s.writeJSON(w, r, http.StatusOK, shape.Record{}.
		Set("status", "healthy").
		Set("dataset_loaded", true).
		Set("records", st.Olympics.Len()))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, shape.Error("Endpoint not found").
		Set("message", "Please check /api/docs for available endpoints"))
}

// writeError maps err onto a response. Not-found lookups answer 200 with
// their payload; parameter errors answer 400; anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *daraerrors.Error
	switch daraerrors.KindOf(err) {
	case daraerrors.KindNotFound:
		if payload, ok := daraerrors.PayloadOf(err); ok {
			s.writeJSON(w, r, http.StatusOK, payload)
			return
		}
	case daraerrors.KindMissingParameter, daraerrors.KindInvalidParameter:
		if errors.As(err, &de) {
			s.writeJSON(w, r, http.StatusBadRequest, shape.Error(de.Message))
			return
		}
	}

	s.logger.Error("query failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID(r.Context()),
		"error", err)
	s.writeInternalError(w, r)
}

func (s *Server) writeInternalError(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusInternalServerError, shape.Error("Internal server error").
		Set("message", "Something went wrong on the server"))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "path", r.URL.Path, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error","message":"Something went wrong on the server"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
