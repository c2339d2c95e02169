// Package config loads the application configuration from a YAML file
// with environment overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DataDir holds the SQLite database file.
	DataDir string `yaml:"data_dir"`

	// StaticDir, when set, is served as the frontend root.
	StaticDir string `yaml:"static_dir,omitempty"`

	// GridRows selects the month-grid height: 5 (compact, may truncate
	// a trailing week) or 6 (always shows the full month).
	GridRows int `yaml:"grid_rows"`

	// HolidayRegion is the ISO country code used for the holiday overlay.
	HolidayRegion string `yaml:"holiday_region"`

	// HolidayFeedURL is the public-holiday API root.
	HolidayFeedURL string `yaml:"holiday_feed_url"`

	// MarketFeedURL, when set, enables the market-holiday overlay feed.
	MarketFeedURL string `yaml:"market_feed_url,omitempty"`

	// HolidayCacheYears bounds the in-memory holiday cache.
	HolidayCacheYears int `yaml:"holiday_cache_years"`

	// TokenSecret signs session tokens. Overridable via TOKEN_SECRET.
	TokenSecret string `yaml:"token_secret"`

	// SessionTTL is how long issued sessions stay valid.
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Default returns an in-memory default configuration.
func Default() *Config {
	return &Config{
		Listen:            ":8099",
		DataDir:           "./data",
		GridRows:          6,
		HolidayRegion:     "US",
		HolidayFeedURL:    "https://date.nager.at",
		HolidayCacheYears: 4,
		SessionTTL:        24 * time.Hour * 7,
	}
}

// Normalize fills in missing or out-of-range values with defaults so a
// partially filled config still behaves.
func (c *Config) Normalize() {
	def := Default()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.GridRows != 5 && c.GridRows != 6 {
		c.GridRows = def.GridRows
	}
	if c.HolidayRegion == "" {
		c.HolidayRegion = def.HolidayRegion
	}
	if c.HolidayFeedURL == "" {
		c.HolidayFeedURL = def.HolidayFeedURL
	}
	if c.HolidayCacheYears <= 0 {
		c.HolidayCacheYears = def.HolidayCacheYears
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = def.SessionTTL
	}
}

// applyEnv overlays environment variables onto the loaded config.
// Secrets should come from the environment rather than the YAML file.
func (c *Config) applyEnv() {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv("HOLIDAY_REGION"); v != "" {
		c.HolidayRegion = v
	}
	if v := os.Getenv("GRID_ROWS"); v != "" {
		if rows, err := strconv.Atoi(v); err == nil {
			c.GridRows = rows
		}
	}
}

// Load reads the YAML config at path, overlays environment variables,
// and normalizes defaults. A missing file is not an error: defaults plus
// environment are used, matching a container-only deployment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.Normalize()

	if cfg.TokenSecret == "" {
		return nil, errors.New("token secret is required (set TOKEN_SECRET or token_secret)")
	}

	return cfg, nil
}
