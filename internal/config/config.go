// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Config holds the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Data      DataConfig      `koanf:"data"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
// See recommend.Config for the meaning of each field.
type RecommendConfig struct {
	Pivot     float64 `koanf:"pivot"`
	MinRating float64 `koanf:"min_rating"`
	MaxRating float64 `koanf:"max_rating"`

	HybridContentWeight  float64 `koanf:"hybrid_content_weight"`
	HybridMinPool        int     `koanf:"hybrid_min_pool"`
	HybridPoolMultiplier int     `koanf:"hybrid_pool_multiplier"`

	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	RebuildInterval time.Duration `koanf:"rebuild_interval"`
	RebuildOnStart  bool          `koanf:"rebuild_on_start"`
	RebuildTimeout  time.Duration `koanf:"rebuild_timeout"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// DataConfig holds data source settings.
type DataConfig struct {
	// DatasetPath is a YAML or JSON catalog and ratings file.
	// Empty loads the built-in demo dataset.
	DatasetPath string `koanf:"dataset_path"`

	// StorePath is the Badger directory for persisted ratings.
	// Empty disables persistence.
	StorePath string `koanf:"store_path"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// EngineConfig converts the recommend section into a recommend.Config.
func (c *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Scoring: recommend.ScoringConfig{
			Pivot:     c.Pivot,
			MinRating: c.MinRating,
			MaxRating: c.MaxRating,
		},
		Hybrid: recommend.HybridConfig{
			ContentWeight:  c.HybridContentWeight,
			MinPool:        c.HybridMinPool,
			PoolMultiplier: c.HybridPoolMultiplier,
		},
		Limits: recommend.LimitsConfig{
			DefaultK: c.DefaultK,
			MaxK:     c.MaxK,
		},
		Rebuild: recommend.RebuildConfig{
			Interval: c.RebuildInterval,
			OnStart:  c.RebuildOnStart,
			Timeout:  c.RebuildTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.CacheEnabled,
			TTL:        c.CacheTTL,
			MaxEntries: c.CacheMaxEntries,
		},
	}
}

// LoggerConfig converts the logging section into a logging.Config.
func (c *LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}

// Load reads configuration from, in increasing priority:
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH, or the first of DefaultConfigPaths that exists)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf()
}
