// Package config provides configuration management for the DARA query service
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the service configuration
type Config struct {
	Server   ServerConfig  `json:"server" yaml:"server" toml:"server"`
	Datasets DatasetConfig `json:"datasets" yaml:"datasets" toml:"datasets"`
	Logging  LoggingConfig `json:"logging" yaml:"logging" toml:"logging"`
	Metrics  MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// ServerConfig configures the HTTP listener and middleware
type ServerConfig struct {
	Addr              string   `json:"addr" yaml:"addr" toml:"addr"`                                              // Listen address
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout" toml:"read_header_timeout"` // Header read deadline
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`          // Graceful shutdown budget
	CORSOrigins       []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`                      // Allowed origins ("*" = any)
	Gzip              bool     `json:"gzip" yaml:"gzip" toml:"gzip"`                                              // Compress responses
}

// DatasetConfig locates the source files
type DatasetConfig struct {
	DataDir      string `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	Olympics     string `json:"olympics" yaml:"olympics" toml:"olympics"`
	Netflix      string `json:"netflix" yaml:"netflix" toml:"netflix"`
	Happiness    string `json:"happiness" yaml:"happiness" toml:"happiness"`
	Energy       string `json:"energy" yaml:"energy" toml:"energy"`
	IPLBatsmen   string `json:"ipl_batsmen" yaml:"ipl_batsmen" toml:"ipl_batsmen"`
	IPLBowlers   string `json:"ipl_bowlers" yaml:"ipl_bowlers" toml:"ipl_bowlers"`
	IPLTeams     string `json:"ipl_teams" yaml:"ipl_teams" toml:"ipl_teams"`
	AllowMissing bool   `json:"allow_missing" yaml:"allow_missing" toml:"allow_missing"` // Serve empty tables for unloadable sources
	LoadWorkers  int    `json:"load_workers" yaml:"load_workers" toml:"load_workers"`    // Concurrent loads (0 = one per CPU)
}

// LoggingConfig selects the slog handler
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`    // debug, info, warn, error
	Format string `json:"format" yaml:"format" toml:"format"` // text, json
}

// MetricsConfig configures the query metrics collector
type MetricsConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled" toml:"enabled"`
	HistorySize int  `json:"history_size" yaml:"history_size" toml:"history_size"` // Recent queries kept
}

// Default configuration values
const (
	DefaultAddr              = ":5000"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultDataDir           = "data"
	DefaultHistorySize       = 1000
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:              DefaultAddr,
			ReadHeaderTimeout: Duration{DefaultReadHeaderTimeout},
			ShutdownTimeout:   Duration{DefaultShutdownTimeout},
			CORSOrigins:       []string{"*"},
			Gzip:              true,
		},
		Datasets: DatasetConfig{
			DataDir:    DefaultDataDir,
			Olympics:   "athlete_events.csv",
			Netflix:    "netflix_cleaned.csv",
			Happiness:  "happiness.csv",
			Energy:     "global_energy_consumption.csv",
			IPLBatsmen: "ipl_batsmen.csv",
			IPLBowlers: "ipl_bowlers.csv",
			IPLTeams:   "ipl_teams.csv",
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			HistorySize: DefaultHistorySize,
		},
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.ReadHeaderTimeout.Duration < 0 {
		return fmt.Errorf("server.read_header_timeout must be non-negative, got %s", c.Server.ReadHeaderTimeout)
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return fmt.Errorf("server.shutdown_timeout must be non-negative, got %s", c.Server.ShutdownTimeout)
	}
	if c.Datasets.LoadWorkers < 0 {
		return fmt.Errorf("datasets.load_workers must be non-negative, got %d", c.Datasets.LoadWorkers)
	}
	if c.Metrics.HistorySize < 0 {
		return fmt.Errorf("metrics.history_size must be non-negative, got %d", c.Metrics.HistorySize)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.ReadHeaderTimeout.Duration == 0 {
		c.Server.ReadHeaderTimeout = defaults.Server.ReadHeaderTimeout
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Server.CORSOrigins == nil {
		c.Server.CORSOrigins = defaults.Server.CORSOrigins
	}

	d := &c.Datasets
	if d.DataDir == "" {
		d.DataDir = defaults.Datasets.DataDir
	}
	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	fill(&d.Olympics, defaults.Datasets.Olympics)
	fill(&d.Netflix, defaults.Datasets.Netflix)
	fill(&d.Happiness, defaults.Datasets.Happiness)
	fill(&d.Energy, defaults.Datasets.Energy)
	fill(&d.IPLBatsmen, defaults.Datasets.IPLBatsmen)
	fill(&d.IPLBowlers, defaults.Datasets.IPLBowlers)
	fill(&d.IPLTeams, defaults.Datasets.IPLTeams)

	fill(&c.Logging.Level, defaults.Logging.Level)
	fill(&c.Logging.Format, defaults.Logging.Format)

	if c.Metrics.HistorySize == 0 {
		c.Metrics.HistorySize = defaults.Metrics.HistorySize
	}

	// Note: Boolean fields are not defaulted here so an explicit false survives.
	// Use NewConfig() as the base when boolean defaults are wanted.

	return c
}

// Path resolves a dataset file name against DataDir.
func (d DatasetConfig) Path(file string) string {
	if filepath.IsAbs(file) || d.DataDir == "" {
		return file
	}
	return filepath.Join(d.DataDir, file)
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	config := NewConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON, YAML, TOML).
// Keys absent from the file keep their NewConfig values.
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := NewConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	case ".toml":
		_, err = toml.Decode(string(data), &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables over the defaults
func LoadFromEnv() Config {
	return NewConfig().ApplyEnv()
}

// ApplyEnv overlays environment variables on c. Unparseable values are ignored.
func (c Config) ApplyEnv() Config {
	if val := os.Getenv("DARA_ADDR"); val != "" {
		c.Server.Addr = val
	} else if val := os.Getenv("PORT"); val != "" {
		if _, err := strconv.Atoi(val); err == nil {
			c.Server.Addr = ":" + val
		}
	}

	if val := os.Getenv("DARA_CORS_ORIGINS"); val != "" {
		var origins []string
		for _, o := range strings.Split(val, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}

	if val := os.Getenv("DARA_GZIP"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			c.Server.Gzip = parsed
		}
	}

	if val := os.Getenv("DARA_DATA_DIR"); val != "" {
		c.Datasets.DataDir = val
	}

	if val := os.Getenv("DARA_ALLOW_MISSING"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			c.Datasets.AllowMissing = parsed
		}
	}

	if val := os.Getenv("DARA_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}

	if val := os.Getenv("DARA_LOG_FORMAT"); val != "" {
		c.Logging.Format = val
	}

	if val := os.Getenv("DARA_METRICS"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			c.Metrics.Enabled = parsed
		}
	}

	return c
}

// Duration is a time.Duration read from strings such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
