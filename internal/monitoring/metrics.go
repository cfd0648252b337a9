// Package monitoring records per-request query metrics for the DARA API.
package monitoring

import (
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/dara-analytics/dara/internal/config"
)

// RequestMetrics describes one served query.
type RequestMetrics struct {
	Route    string        `json:"route"`
	Method   string        `json:"method"`
	Status   int           `json:"status"`
	Duration time.Duration `json:"duration"`
	Bytes    int64         `json:"bytes"`
	At       time.Time     `json:"at"`
}

// Failed reports whether the request ended with a 4xx or 5xx status.
func (m RequestMetrics) Failed() bool {
	return m.Status >= 400
}

// Collector keeps the most recent requests in a fixed-size ring and running
// totals for everything it has seen since the last Clear.
type Collector struct {
	mu      sync.RWMutex
	history []RequestMetrics
	next    int
	full    bool

	enabled  atomic.Bool
	requests atomic.Int64
	errors   atomic.Int64
}

// NewCollector creates a collector sized by cfg.HistorySize.
func NewCollector(cfg config.MetricsConfig) *Collector {
	size := cfg.HistorySize
	if size <= 0 {
		size = config.DefaultHistorySize
	}
	c := &Collector{history: make([]RequestMetrics, size)}
	c.enabled.Store(cfg.Enabled)
	return c
}

// IsEnabled returns whether metrics collection is enabled.
func (c *Collector) IsEnabled() bool {
	return c.enabled.Load()
}

// SetEnabled toggles collection. Recorded history is kept.
func (c *Collector) SetEnabled(enabled bool) {
	c.enabled.Store(enabled)
}

// Record stores m. It is a no-op while the collector is disabled.
func (c *Collector) Record(m RequestMetrics) {
	if !c.IsEnabled() {
		return
	}
	if m.At.IsZero() {
		m.At = time.Now().UTC()
	}

	c.requests.Inc()
	if m.Failed() {
		c.errors.Inc()
	}

	c.mu.Lock()
	c.history[c.next] = m
	c.next = (c.next + 1) % len(c.history)
	if c.next == 0 {
		c.full = true
	}
	c.mu.Unlock()
}

// Recent returns the retained requests, oldest first.
func (c *Collector) Recent() []RequestMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.full {
		return slices.Clone(c.history[:c.next])
	}
	out := make([]RequestMetrics, 0, len(c.history))
	out = append(out, c.history[c.next:]...)
	return append(out, c.history[:c.next]...)
}

// Clear drops the history and resets the totals.
func (c *Collector) Clear() {
	c.mu.Lock()
	clear(c.history)
	c.next = 0
	c.full = false
	c.mu.Unlock()

	c.requests.Store(0)
	c.errors.Store(0)
}

// RouteSummary aggregates the retained requests of one route.
type RouteSummary struct {
	Route           string        `json:"route"`
	Requests        int           `json:"requests"`
	Errors          int           `json:"errors"`
	AverageDuration time.Duration `json:"average_duration"`
	MaxDuration     time.Duration `json:"max_duration"`
	Bytes           int64         `json:"bytes"`
}

// Summary is the collector state reported by /metrics/summary.
type Summary struct {
	Enabled       bool           `json:"enabled"`
	TotalRequests int64          `json:"total_requests"`
	TotalErrors   int64          `json:"total_errors"`
	Retained      int            `json:"retained"`
	Routes        []RouteSummary `json:"routes"`
}

// Summary totals everything recorded and breaks the retained history down
// by route, ordered by route.
func (c *Collector) Summary() Summary {
	recent := c.Recent()

	byRoute := make(map[string]*RouteSummary)
	totals := make(map[string]time.Duration)
	for _, m := range recent {
		rs, ok := byRoute[m.Route]
		if !ok {
			rs = &RouteSummary{Route: m.Route}
			byRoute[m.Route] = rs
		}
		rs.Requests++
		if m.Failed() {
			rs.Errors++
		}
		rs.Bytes += m.Bytes
		rs.MaxDuration = max(rs.MaxDuration, m.Duration)
		totals[m.Route] += m.Duration
	}

	routes := make([]RouteSummary, 0, len(byRoute))
	for route, rs := range byRoute {
		rs.AverageDuration = totals[route] / time.Duration(rs.Requests)
		routes = append(routes, *rs)
	}
	slices.SortFunc(routes, func(a, b RouteSummary) int {
		return strings.Compare(a.Route, b.Route)
	})

	return Summary{
		Enabled:       c.IsEnabled(),
		TotalRequests: c.requests.Load(),
		TotalErrors:   c.errors.Load(),
		Retained:      len(recent),
		Routes:        routes,
	}
}
