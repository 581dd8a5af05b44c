// Package config provides configuration management for the harvester.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cveharvest/internal/models"
)

// Pagination signal modes. The catalog's markup has carried both a
// "Next" advisory link and a styled pagination anchor at different
// times, so the detection rule is configuration, not a constant.
const (
	NextSignalLinkText   = "link_text"
	NextSignalStyleClass = "style_class"
)

// Pacing modes.
const (
	PacingFixed  = "fixed"
	PacingRandom = "random"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL        = errors.New("source.base_url is required")
	ErrInvalidYearRange      = errors.New("range.start_year must not exceed range.end_year")
	ErrUnknownMonth          = errors.New("range.months contains an unknown month name")
	ErrInvalidConcurrency    = errors.New("concurrency.max_active_units must be at least 1")
	ErrInvalidPaginationMode = errors.New("pagination.next_signal must be 'link_text' or 'style_class'")
	ErrMissingNextText       = errors.New("pagination.next_text is required in link_text mode")
	ErrMissingNextClass      = errors.New("pagination.next_class is required in style_class mode")
	ErrInvalidPacingMode     = errors.New("pacing.mode must be 'fixed' or 'random'")
	ErrInvalidPacingRange    = errors.New("pacing.min_delay_ms must be non-negative and not exceed pacing.max_delay_ms")
	ErrInvalidTimeout        = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidBodyLimit      = errors.New("fetch.max_body_kb must be at least 1")
	ErrInvalidRate           = errors.New("fetch.rate_per_sec must be positive")
	ErrMissingOutputPath     = errors.New("output.base_path is required")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete harvester configuration.
type Config struct {
	Harvester HarvesterConfig `yaml:"harvester"`
}

// HarvesterConfig contains harvester-specific settings.
type HarvesterConfig struct {
	Source      SourceConfig      `yaml:"source"`
	Range       RangeConfig       `yaml:"range"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Pacing      PacingConfig      `yaml:"pacing"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SourceConfig identifies the upstream catalog and the outbound
// identity profile sent with every request.
type SourceConfig struct {
	BaseURL   string        `yaml:"base_url"`
	SortOrder string        `yaml:"sort_order"`
	Headers   HeaderProfile `yaml:"headers"`
}

// HeaderProfile is the fixed header set applied to every outbound
// request. It is handed to the fetcher at construction and never
// mutated afterwards.
type HeaderProfile struct {
	UserAgent      string `yaml:"user_agent"`
	Referer        string `yaml:"referer"`
	AcceptLanguage string `yaml:"accept_language"`
}

// RangeConfig defines which calendar partitions to harvest.
type RangeConfig struct {
	StartYear int      `yaml:"start_year"`
	EndYear   int      `yaml:"end_year"`
	Months    []string `yaml:"months"`
}

// PaginationConfig defines how the "more pages exist" signal is
// detected in listing markup.
type PaginationConfig struct {
	NextSignal string `yaml:"next_signal"`
	NextText   string `yaml:"next_text"`
	NextClass  string `yaml:"next_class"`
}

// PacingConfig defines the delay applied between page fetches within
// one unit.
type PacingConfig struct {
	Mode       string `yaml:"mode"`
	MinDelayMs int    `yaml:"min_delay_ms"`
	MaxDelayMs int    `yaml:"max_delay_ms"`
}

// FetchConfig defines per-request transport behavior.
type FetchConfig struct {
	TimeoutSec int     `yaml:"timeout_sec"`
	MaxBodyKb  int     `yaml:"max_body_kb"`
	RatePerSec float64 `yaml:"rate_per_sec"`
}

// ConcurrencyConfig bounds how many units run at once.
type ConcurrencyConfig struct {
	MaxActiveUnits int `yaml:"max_active_units"`
}

// OutputConfig defines where unit CSV files are written.
type OutputConfig struct {
	BasePath string `yaml:"base_path"`
}

// LoggingConfig defines logging behavior. When File is set, log output
// is rotated on disk instead of written to stderr.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMb  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the configuration matching the catalog's observed
// behavior: years 2015-2025, all months, five concurrent units, fixed
// two-second pacing, and "Next" link-text continuation.
func Default() *Config {
	return &Config{
		Harvester: HarvesterConfig{
			Source: SourceConfig{
				BaseURL: "https://www.cvedetails.com",
				Headers: HeaderProfile{
					UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36",
					Referer:        "https://www.google.com/",
					AcceptLanguage: "en-US,en;q=0.9",
				},
			},
			Range: RangeConfig{
				StartYear: 2015,
				EndYear:   2025,
			},
			Pagination: PaginationConfig{
				NextSignal: NextSignalLinkText,
				NextText:   "Next",
			},
			Pacing: PacingConfig{
				Mode:       PacingFixed,
				MinDelayMs: 2000,
				MaxDelayMs: 2000,
			},
			Fetch: FetchConfig{
				TimeoutSec: 30,
				MaxBodyKb:  2048,
				RatePerSec: 2.0,
			},
			Concurrency: ConcurrencyConfig{
				MaxActiveUnits: 5,
			},
			Output: OutputConfig{
				BasePath: "./storage",
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	h := &c.Harvester

	if h.Source.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if h.Range.StartYear > h.Range.EndYear {
		return ErrInvalidYearRange
	}

	for i, month := range h.Range.Months {
		if !models.IsValidMonth(month) {
			return fmt.Errorf("%w: months[%d]=%q", ErrUnknownMonth, i, month)
		}
	}

	switch h.Pagination.NextSignal {
	case NextSignalLinkText:
		if h.Pagination.NextText == "" {
			return ErrMissingNextText
		}
	case NextSignalStyleClass:
		if h.Pagination.NextClass == "" {
			return ErrMissingNextClass
		}
	default:
		return ErrInvalidPaginationMode
	}

	if h.Pacing.Mode != PacingFixed && h.Pacing.Mode != PacingRandom {
		return ErrInvalidPacingMode
	}

	if h.Pacing.MinDelayMs < 0 || h.Pacing.MinDelayMs > h.Pacing.MaxDelayMs {
		return ErrInvalidPacingRange
	}

	if h.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if h.Fetch.MaxBodyKb < 1 {
		return ErrInvalidBodyLimit
	}

	if h.Fetch.RatePerSec <= 0 {
		return ErrInvalidRate
	}

	if h.Concurrency.MaxActiveUnits < 1 {
		return ErrInvalidConcurrency
	}

	if h.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[h.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetMonths returns the configured month set, or all twelve months
// when the set is empty.
func (r *RangeConfig) GetMonths() []string {
	if len(r.Months) == 0 {
		return models.MonthNames
	}

	return r.Months
}

// Years returns the configured year range as an ascending slice.
func (r *RangeConfig) Years() []int {
	years := make([]int, 0, r.EndYear-r.StartYear+1)
	for y := r.StartYear; y <= r.EndYear; y++ {
		years = append(years, y)
	}

	return years
}

// GetTimeout returns the per-request timeout duration.
func (f *FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// MinDelay returns the lower pacing bound.
func (p *PacingConfig) MinDelay() time.Duration {
	return time.Duration(p.MinDelayMs) * time.Millisecond
}

// MaxDelay returns the upper pacing bound.
func (p *PacingConfig) MaxDelay() time.Duration {
	return time.Duration(p.MaxDelayMs) * time.Millisecond
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Years: %d-%d, Months: %d, MaxActiveUnits: %d, Output: %s}",
		c.Harvester.Range.StartYear,
		c.Harvester.Range.EndYear,
		len(c.Harvester.Range.GetMonths()),
		c.Harvester.Concurrency.MaxActiveUnits,
		c.Harvester.Output.BasePath,
	)
}
