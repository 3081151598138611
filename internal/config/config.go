// Package config loads and validates the migration tool's configuration.
//
// Configuration comes from a YAML file with defaults applied first, then
// .env files (via godotenv, never overriding real environment variables),
// then DOCMIGRATE_* environment overrides. The loaded Config is passed into
// pipelines explicitly; nothing in the processing packages reads it from a
// global.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
)

// Config is the root configuration for docmigrate.
type Config struct {
	// SourceDir is the root of the legacy-dialect documentation checkout.
	SourceDir string `yaml:"source_dir"`
	// DocsDir is the destination documentation tree, and the tree the rename
	// pass operates on.
	DocsDir string `yaml:"docs_dir"`
	// ReleaseDir marks restricted documents (links-only rename).
	ReleaseDir string `yaml:"release_dir"`
	// NavData is the navigation JSON the sidebar titles are loaded from.
	NavData string `yaml:"nav_data"`
	// DocsJSON is the sidecar navigation config updated after companion
	// renames.
	DocsJSON string `yaml:"docs_json"`

	Upstream UpstreamConfig `yaml:"upstream"`
	Store    StoreConfig    `yaml:"store"`
	Publish  PublishConfig  `yaml:"publish"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Watch    WatchConfig    `yaml:"watch"`
}

// UpstreamConfig locates the upstream documentation repository for fetch.
type UpstreamConfig struct {
	URL  string `yaml:"url"`
	Ref  string `yaml:"ref"`
	Path string `yaml:"path"`
}

// StoreConfig configures the optional run-report store.
type StoreConfig struct {
	// Path of the SQLite database; empty disables persistence.
	Path string `yaml:"path"`
}

// PublishConfig configures the optional review-event publisher.
type PublishConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// MetricsConfig configures the watch-mode metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// WatchConfig tunes watch mode. Durations are Go duration strings ("500ms",
// "2m"); they are parsed during validation.
type WatchConfig struct {
	// Debounce is the quiet window after a filesystem event before a run.
	Debounce string `yaml:"debounce"`
	// Interval schedules periodic full runs; empty disables them.
	Interval string `yaml:"interval"`

	debounce time.Duration
	interval time.Duration
}

// DebounceDuration returns the parsed debounce window. Valid only after
// Validate has run.
func (w *WatchConfig) DebounceDuration() time.Duration { return w.debounce }

// IntervalDuration returns the parsed periodic-run interval, zero when
// disabled. Valid only after Validate has run.
func (w *WatchConfig) IntervalDuration() time.Duration { return w.interval }

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		SourceDir:  "v0.21.x/docs/cdktf",
		DocsDir:    "docs",
		ReleaseDir: "docs/release",
		NavData:    "v0.21.x/data/cdktf-nav-data.json",
		DocsJSON:   "docs.json",
		Upstream: UpstreamConfig{
			URL:  "https://github.com/open-constructs/cdk-terrain",
			Ref:  "main",
			Path: "workspace/cdk-terrain",
		},
		Publish: PublishConfig{
			Subject: "docmigrate.review",
		},
		Metrics: MetricsConfig{
			Listen: ":9090",
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// Load reads configuration from path. A missing file is not an error: the
// defaults plus environment overrides apply. A present but unparsable file
// is a configuration error.
func Load(path string) (*Config, error) {
	// .env files supplement, never override, the real environment.
	_ = godotenv.Load()

	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.CategoryConfig, "read config file").WithContext("file", path)
		}
	} else if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, "parse config file").WithContext("file", path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants the pipelines rely on.
func (c *Config) Validate() error {
	if c.DocsDir == "" {
		return apperrors.ConfigError("docs_dir must not be empty")
	}
	if c.SourceDir == "" {
		return apperrors.ConfigError("source_dir must not be empty")
	}
	if c.Publish.Enabled && c.Publish.NATSURL == "" {
		return apperrors.ConfigError("publish.nats_url is required when publishing is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return apperrors.ConfigError("metrics.listen is required when metrics are enabled")
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "500ms"
	}
	debounce, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return apperrors.ConfigError("watch.debounce is not a valid duration: " + c.Watch.Debounce)
	}
	c.Watch.debounce = debounce

	if c.Watch.Interval != "" {
		interval, err := time.ParseDuration(c.Watch.Interval)
		if err != nil {
			return apperrors.ConfigError("watch.interval is not a valid duration: " + c.Watch.Interval)
		}
		c.Watch.interval = interval
	}
	return nil
}

// applyEnvOverrides maps DOCMIGRATE_* environment variables onto the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCMIGRATE_SOURCE_DIR"); v != "" {
		cfg.SourceDir = v
	}
	if v := os.Getenv("DOCMIGRATE_DOCS_DIR"); v != "" {
		cfg.DocsDir = v
	}
	if v := os.Getenv("DOCMIGRATE_NAV_DATA"); v != "" {
		cfg.NavData = v
	}
	if v := os.Getenv("DOCMIGRATE_NATS_URL"); v != "" {
		cfg.Publish.NATSURL = v
	}
	if v := os.Getenv("DOCMIGRATE_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
}
