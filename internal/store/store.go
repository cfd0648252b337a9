// Package store loads, cleans and decodes every dataset once and publishes
// them as an immutable Store shared by all requests.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dara-analytics/dara/internal/config"
	"github.com/dara-analytics/dara/internal/datasets/energy"
	"github.com/dara-analytics/dara/internal/datasets/happiness"
	"github.com/dara-analytics/dara/internal/datasets/ipl"
	"github.com/dara-analytics/dara/internal/datasets/netflix"
	"github.com/dara-analytics/dara/internal/datasets/olympics"
	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/io"
	daramem "github.com/dara-analytics/dara/internal/memory"
	"github.com/dara-analytics/dara/internal/parallel"
	"github.com/dara-analytics/dara/internal/series"
	"github.com/dara-analytics/dara/internal/table"
)

// Source names
const (
	SourceOlympics   = "olympics"
	SourceNetflix    = "netflix"
	SourceHappiness  = "happiness"
	SourceEnergy     = "energy"
	SourceIPLBatsmen = "ipl_batsmen"
	SourceIPLBowlers = "ipl_bowlers"
	SourceIPLTeams   = "ipl_teams"
)

// Source describes how one file was loaded.
type Source struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration"`
	// Empty is set when the file could not be loaded and an empty table is served instead.
	Empty bool   `json:"empty"`
	Error string `json:"error,omitempty"`
}

// Store holds the decoded datasets. It is never modified after Load returns.
type Store struct {
	Olympics  *olympics.Dataset
	Netflix   *netflix.Dataset
	Happiness *happiness.Dataset
	Energy    *energy.Dataset
	IPL       *ipl.Dataset

	Sources  []Source
	LoadedAt time.Time
	// PeakBytes is the most arrow memory held at once while loading.
	PeakBytes int64
}

// Source returns the load record of a source by name.
func (s *Store) Source(name string) (Source, bool) {
	for _, src := range s.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

// recipe describes how to load one source file.
type recipe struct {
	name    string
	file    string
	columns []string
	kinds   map[string]io.Kind
	clean   io.CleanOptions
}

func plan(cfg config.DatasetConfig) []recipe {
	return []recipe{
		{SourceOlympics, cfg.Olympics, olympics.Columns, olympics.Kinds, olympics.CleanOptions()},
		{SourceNetflix, cfg.Netflix, netflix.Columns, netflix.Kinds, netflix.CleanOptions()},
		{SourceHappiness, cfg.Happiness, happiness.Columns, happiness.Kinds, happiness.CleanOptions()},
		{SourceEnergy, cfg.Energy, energy.Columns, energy.Kinds, energy.CleanOptions()},
		{SourceIPLBatsmen, cfg.IPLBatsmen, ipl.BatsmenColumns, ipl.Kinds, ipl.CleanOptions()},
		{SourceIPLBowlers, cfg.IPLBowlers, ipl.BowlersColumns, ipl.Kinds, ipl.CleanOptions()},
		{SourceIPLTeams, cfg.IPLTeams, ipl.TeamsColumns, ipl.Kinds, ipl.CleanOptions()},
	}
}

// Load reads every source concurrently, cleans it and decodes it. A source
// that cannot be loaded fails the whole load unless cfg.AllowMissing is set,
// in which case it is served as an empty table and logged at warn level.
func Load(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	mem := daramem.NewTracker(nil)
	recipes := plan(cfg)
	tables := make([]*table.Table, len(recipes))
	sources := make([]Source, len(recipes))

	pool := parallel.NewWorkerPool(ctx, cfg.LoadWorkers)
	defer pool.Close()

	start := time.Now()
	err := parallel.ForEach(pool, recipes, func(ctx context.Context, i int, r recipe) error {
		began := time.Now()
		path := cfg.Path(r.file)
		t, err := loadTable(ctx, r, path, mem)
		src := Source{Name: r.name, Path: path, Duration: time.Since(began)}
		if err != nil {
			if !cfg.AllowMissing {
				return err
			}
			logger.Warn("dataset unavailable, serving empty table", "dataset", r.name, "path", path, "error", err)
			t = emptyTable(r, mem)
			src.Empty = true
			src.Error = err.Error()
		} else {
			logger.Info("dataset loaded", "dataset", r.name, "path", path, "rows", t.Len(), "duration", src.Duration)
		}
		src.Rows = t.Len()
		tables[i] = t
		sources[i] = src
		return nil
	})
	if err != nil {
		release(tables)
		return nil, err
	}

	s, err := decode(tables)
	release(tables)
	if err != nil {
		return nil, err
	}
	// Decoded rows are plain Go values; the arrow buffers are no longer referenced.
	daramem.ForceGC()

	s.Sources = sources
	s.LoadedAt = time.Now()
	s.PeakBytes = mem.Peak()
	logger.Info("datasets ready", "sources", len(sources), "duration", time.Since(start),
		"peak_bytes", s.PeakBytes, "allocations", mem.Allocations())
	return s, nil
}

func release(tables []*table.Table) {
	for _, t := range tables {
		t.Release()
	}
}

func loadTable(ctx context.Context, r recipe, path string, mem memory.Allocator) (*table.Table, error) {
	opts := io.DefaultCSVOptions()
	opts.Kinds = r.kinds
	raw, err := io.ReadFile(ctx, r.name, path, opts, mem)
	if err != nil {
		return nil, err
	}
	defer raw.Release()

	if err := raw.Require(r.name, r.columns...); err != nil {
		return nil, err
	}
	cleaned, err := io.Clean(raw, r.clean, mem)
	if err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", r.name, err)
	}
	return cleaned, nil
}

// emptyTable has the required columns of r and no rows.
func emptyTable(r recipe, mem memory.Allocator) *table.Table {
	cols := make([]table.Column, len(r.columns))
	for i, name := range r.columns {
		if r.kinds[name] == io.KindString {
			cols[i] = series.New(name, []string{}, mem)
		} else {
			cols[i] = series.New(name, []float64{}, mem)
		}
	}
	return table.New(cols...)
}

func decode(tables []*table.Table) (*Store, error) {
	var (
		s   Store
		err error
	)
	if s.Olympics, err = olympics.FromTable(tables[0]); err != nil {
		return nil, err
	}
	if s.Netflix, err = netflix.FromTable(tables[1]); err != nil {
		return nil, err
	}
	if s.Happiness, err = happiness.FromTable(tables[2]); err != nil {
		return nil, err
	}
	if s.Energy, err = energy.FromTable(tables[3]); err != nil {
		return nil, err
	}
	if s.IPL, err = ipl.FromTables(tables[4], tables[5], tables[6]); err != nil {
		return nil, err
	}
	return &s, nil
}

// Once runs a loader at most once. Every caller observes the same store or
// the same error, never a partially loaded one.
type Once struct {
	once  sync.Once
	load  func(context.Context) (*Store, error)
	store *Store
	err   error
}

// NewOnce wraps load.
func NewOnce(load func(context.Context) (*Store, error)) *Once {
	return &Once{load: load}
}

// Get runs the loader on first use and returns its result. A loader panic is
// kept as a data-load error and returned to every caller.
func (o *Once) Get(ctx context.Context) (*Store, error) {
	o.once.Do(func() {
		defer func() {
			if p := recover(); p != nil {
				o.store = nil
				o.err = daraerrors.NewDataLoadError("Load", "datasets", fmt.Errorf("panic: %v", p))
			}
		}()
		o.store, o.err = o.load(ctx)
	})
	return o.store, o.err
}

// Loaded returns a Once that already holds st.
func Loaded(st *Store) *Once {
	o := &Once{store: st}
	o.once.Do(func() {})
	return o
}
