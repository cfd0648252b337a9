// Package dara serves read-only analytical queries over the Olympics,
// Netflix, World Happiness, global energy and IPL datasets as a JSON API.
// This package is the public entry point; the query engine lives under
// internal/.
package dara

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dara-analytics/dara/internal/api"
	"github.com/dara-analytics/dara/internal/config"
	"github.com/dara-analytics/dara/internal/monitoring"
	"github.com/dara-analytics/dara/internal/store"
)

// Config is the service configuration.
type Config = config.Config

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return config.NewConfig()
}

// LoadConfig reads path (JSON, YAML or TOML by extension) when it is not
// empty, overlays the DARA_* environment variables and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := config.NewConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg = cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Service owns the dataset store and the HTTP handler built on it.
type Service struct {
	cfg       Config
	logger    *slog.Logger
	store     *store.Once
	collector *monitoring.Collector
	server    *api.Server
}

// Option configures a Service.
type Option func(*Service)

// WithLogger replaces the logger built from Config.Logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New validates cfg and wires the service. Datasets are loaded on the first
// request or by Preload, whichever comes first.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = cfg.Logging.NewLogger(os.Stderr)
	}

	s.store = store.NewOnce(func(ctx context.Context) (*store.Store, error) {
		// Loading outlives the request that triggered it.
		return store.Load(context.WithoutCancel(ctx), cfg.Datasets, s.logger)
	})

	serverOpts := []api.Option{api.WithLogger(s.logger)}
	if cfg.Metrics.Enabled {
		s.collector = monitoring.NewCollector(cfg.Metrics)
		serverOpts = append(serverOpts, api.WithCollector(s.collector))
	}
	s.server = api.New(s.store, cfg.Server, serverOpts...)
	return s, nil
}

// Preload loads every dataset now. A load error is returned here and by every
// later request.
func (s *Service) Preload(ctx context.Context) error {
	_, err := s.store.Get(ctx)
	return err
}

// Handler returns the HTTP handler serving the API.
func (s *Service) Handler() http.Handler {
	return s.server
}

// ListenAndServe serves on Config.Server.Addr until ctx is done, then shuts
// down gracefully within Config.Server.ShutdownTimeout.
func (s *Service) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.server,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout.Duration,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.Server.ShutdownTimeout.Duration)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", srv.Addr, err)
	}
	return nil
}
