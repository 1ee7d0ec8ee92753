// Package common provides shared utilities for Scout
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/scout/internal/models"
)

// Config holds all configuration for Scout
type Config struct {
	Environment string        `toml:"environment"`
	Scan        ScanConfig    `toml:"scan"`
	Filter      FilterConfig  `toml:"filter"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ScanConfig holds scan pipeline configuration
type ScanConfig struct {
	Source      string `toml:"source"`      // nasdaq, nyse, sp500, user
	Concurrency int    `toml:"concurrency"` // acquisition worker count
	Deadline    string `toml:"deadline"`    // overall acquisition deadline, duration string
	CacheTTL    string `toml:"cache_ttl"`   // record cache window, duration string
}

// GetDeadline parses and returns the acquisition deadline
func (c *ScanConfig) GetDeadline() time.Duration {
	d, err := time.ParseDuration(c.Deadline)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GetCacheTTL parses and returns the cache TTL
func (c *ScanConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return FreshnessMarketRecords
	}
	return d
}

// FilterConfig holds the default filter criteria applied to scans
type FilterConfig struct {
	PriceMin         float64 `toml:"price_min"`
	PriceMax         float64 `toml:"price_max"`
	FloatCeilingM    float64 `toml:"float_ceiling_m"`
	MinVolume        int64   `toml:"min_volume"`
	MinPercentChange float64 `toml:"min_percent_change"`
	MinVolumeRatio   float64 `toml:"min_volume_ratio"`
	ResultCount      int     `toml:"result_count"`
}

// Criteria converts the config section into filter criteria for a scan.
func (c *FilterConfig) Criteria() models.FilterCriteria {
	return models.FilterCriteria{
		PriceMin:         c.PriceMin,
		PriceMax:         c.PriceMax,
		FloatCeilingM:    c.FloatCeilingM,
		MinVolume:        c.MinVolume,
		MinPercentChange: c.MinPercentChange,
		MinVolumeRatio:   c.MinVolumeRatio,
		ResultCount:      c.ResultCount,
	}
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo   YahooConfig   `toml:"yahoo"`
	Listing ListingConfig `toml:"listing"`
}

// YahooConfig holds market-data provider configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ListingConfig holds exchange/index listing source configuration
type ListingConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ListingConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Scan: ScanConfig{
			Source:      "nasdaq",
			Concurrency: 12,
			Deadline:    "60s",
			CacheTTL:    "5m",
		},
		Filter: FilterConfig{
			PriceMin:         2.0,
			PriceMax:         20.0,
			FloatCeilingM:    10.0,
			MinVolume:        0,
			MinPercentChange: 0,
			MinVolumeRatio:   5.0,
			ResultCount:      10,
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Listing: ListingConfig{
				BaseURL:   "https://api.nasdaq.com/api",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SCOUT_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("SCOUT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if src := os.Getenv("SCOUT_SCAN_SOURCE"); src != "" {
		config.Scan.Source = strings.ToLower(src)
	}

	if workers := os.Getenv("SCOUT_SCAN_CONCURRENCY"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			config.Scan.Concurrency = n
		}
	}

	if deadline := os.Getenv("SCOUT_SCAN_DEADLINE"); deadline != "" {
		config.Scan.Deadline = deadline
	}

	if url := os.Getenv("SCOUT_YAHOO_BASE_URL"); url != "" {
		config.Clients.Yahoo.BaseURL = url
	}

	if url := os.Getenv("SCOUT_LISTING_BASE_URL"); url != "" {
		config.Clients.Listing.BaseURL = url
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
