// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// CatalogPath is the YAML or JSON catalog loaded at startup.
	CatalogPath string `koanf:"catalog_path" validate:"required"`

	// StrictCatalog rejects catalogs whose stored scores disagree with the
	// derived score or whose ranks are not dense.
	StrictCatalog bool `koanf:"strict_catalog"`

	// SimilarCount is the number of neighbours on the detail view.
	SimilarCount int `koanf:"similar_count" validate:"gte=1"`

	// ExplorerLimit caps the attribute explorer ranking.
	ExplorerLimit int `koanf:"explorer_limit" validate:"gte=1"`

	// LeaderboardSize is the length of the top and bottom lists.
	LeaderboardSize int `koanf:"leaderboard_size" validate:"gte=1"`

	// MaxListLimit caps every limit query parameter.
	MaxListLimit int `koanf:"max_list_limit" validate:"gte=1"`

	// CacheTTLSeconds and CacheCleanupSeconds tune the derived view cache.
	CacheTTLSeconds     int `koanf:"cache_ttl_seconds" validate:"gte=1"`
	CacheCleanupSeconds int `koanf:"cache_cleanup_seconds" validate:"gte=1"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required"`

	// MetricsLabels are constant labels added to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		CatalogPath:         "data/catalog.yaml",
		SimilarCount:        3,
		ExplorerLimit:       20,
		LeaderboardSize:     5,
		MaxListLimit:        500,
		CacheTTLSeconds:     300,
		CacheCleanupSeconds: 600,
		MetricsNamespace:    "yogic",
	}
}

// CacheTTL returns the view cache expiry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CacheCleanup returns the view cache janitor interval.
func (c *Config) CacheCleanup() time.Duration {
	return time.Duration(c.CacheCleanupSeconds) * time.Second
}
