// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scoring contains rating scale parameters.
	Scoring ScoringConfig `json:"scoring"`

	// Hybrid contains rank fusion parameters.
	Hybrid HybridConfig `json:"hybrid"`

	// Limits contains operational limits for Engine.Recommend.
	Limits LimitsConfig `json:"limits"`

	// Rebuild contains model rebuild parameters.
	Rebuild RebuildConfig `json:"rebuild"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// ScoringConfig contains rating scale parameters.
type ScoringConfig struct {
	// Pivot is the neutral rating. Ratings above it are positive signal,
	// ratings below it negative.
	// Default: 3.0.
	Pivot float64 `json:"pivot"`

	// MinRating is the lowest accepted rating.
	// Default: 1.0.
	MinRating float64 `json:"min_rating"`

	// MaxRating is the highest accepted rating.
	// Default: 5.0.
	MaxRating float64 `json:"max_rating"`
}

// HybridConfig contains rank fusion parameters.
type HybridConfig struct {
	// ContentWeight is the default share of the content ranking, in [0, 1].
	// The collaborative ranking gets 1 - ContentWeight.
	// Default: 0.5.
	ContentWeight float64 `json:"content_weight"`

	// MinPool is the minimum candidate pool drawn from each recommender.
	// Default: 50.
	MinPool int `json:"min_pool"`

	// PoolMultiplier scales k to size the candidate pool.
	// Default: 3.
	PoolMultiplier int `json:"pool_multiplier"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of recommendations returned when a request omits k.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed k value.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// RebuildConfig contains model rebuild parameters.
type RebuildConfig struct {
	// Interval is the time between scheduled rebuilds. Zero disables scheduling.
	// Default: 1h.
	Interval time.Duration `json:"interval"`

	// OnStart triggers a rebuild when the rebuild service starts.
	// Default: false.
	OnStart bool `json:"on_start"`

	// Timeout bounds a single rebuild.
	// Default: 5m.
	Timeout time.Duration `json:"timeout"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the default parameters.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Pivot:     3.0,
			MinRating: 1.0,
			MaxRating: 5.0,
		},
		Hybrid: HybridConfig{
			ContentWeight:  0.5,
			MinPool:        50,
			PoolMultiplier: 3,
		},
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     100,
		},
		Rebuild: RebuildConfig{
			Interval: time.Hour,
			OnStart:  false,
			Timeout:  5 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if math.IsNaN(c.Scoring.Pivot) || math.IsInf(c.Scoring.Pivot, 0) {
		return fmt.Errorf("scoring.pivot must be finite, got %f", c.Scoring.Pivot)
	}
	if c.Scoring.MinRating > c.Scoring.MaxRating {
		return fmt.Errorf("scoring.min_rating must be <= scoring.max_rating, got %f > %f", c.Scoring.MinRating, c.Scoring.MaxRating)
	}
	if c.Scoring.Pivot < c.Scoring.MinRating || c.Scoring.Pivot > c.Scoring.MaxRating {
		return fmt.Errorf("scoring.pivot must be within [min_rating, max_rating], got %f", c.Scoring.Pivot)
	}
	if !validWeight(c.Hybrid.ContentWeight) {
		return fmt.Errorf("hybrid.content_weight must be in [0, 1], got %f", c.Hybrid.ContentWeight)
	}
	if c.Hybrid.MinPool < 1 {
		return fmt.Errorf("hybrid.min_pool must be positive, got %d", c.Hybrid.MinPool)
	}
	if c.Hybrid.PoolMultiplier < 1 {
		return fmt.Errorf("hybrid.pool_multiplier must be positive, got %d", c.Hybrid.PoolMultiplier)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Rebuild.Interval < 0 {
		return fmt.Errorf("rebuild.interval must be non-negative, got %v", c.Rebuild.Interval)
	}
	if c.Rebuild.Timeout <= 0 {
		return fmt.Errorf("rebuild.timeout must be positive, got %v", c.Rebuild.Timeout)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && w >= 0 && w <= 1
}
