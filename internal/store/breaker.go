// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// BreakerConfig tunes the circuit breaker in front of rating writes.
type BreakerConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxRequests is the number of trial writes allowed while half-open.
	MaxRequests uint32

	// Interval resets the failure counts while closed. Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens it.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the settings used by the server.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "rating-store",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// GuardedStore wraps a RatingStore so that repeated write failures fail fast
// with gobreaker.ErrOpenState instead of queueing on a broken disk.
//
// The breaker uses wall-clock time for Interval and Timeout.
type GuardedStore struct {
	store  *RatingStore
	cb     *gobreaker.CircuitBreaker[struct{}]
	name   string
	logger zerolog.Logger
}

// NewGuardedStore wraps st. Zero fields in cfg take their defaults.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewGuardedStore(st *RatingStore, cfg BreakerConfig, logger zerolog.Logger) *GuardedStore {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}

	g := &GuardedStore{
		store:  st,
		name:   cfg.Name,
		logger: logger.With().Str("component", "store_breaker").Str("breaker", cfg.Name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.RecordBreakerFailures(cfg.Name, 0)

	g.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A cancelled request says nothing about the disk.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return g
}

// Save persists r unless the breaker is open.
func (g *GuardedStore) Save(ctx context.Context, r recommend.Rating) error {
	_, err := g.cb.Execute(func() (struct{}, error) {
		return struct{}{}, g.store.Save(ctx, r)
	})

	switch {
	case err == nil:
		metrics.RecordBreakerRequest(g.name, "success")
		metrics.RecordBreakerFailures(g.name, 0)
	case IsUnavailable(err):
		metrics.RecordBreakerRequest(g.name, "rejected")
		g.logger.Debug().Err(err).Msg("rating write rejected")
	default:
		metrics.RecordBreakerRequest(g.name, "failure")
		metrics.RecordBreakerFailures(g.name, g.cb.Counts().ConsecutiveFailures)
	}
	return err
}

// Backup streams a backup of the underlying store. Backups bypass the
// breaker so an operator can still take one while writes are failing.
func (g *GuardedStore) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	return g.store.Backup(ctx, w)
}

// State reports the breaker state: "closed", "half-open" or "open".
func (g *GuardedStore) State() string {
	return g.cb.State().String()
}

// IsUnavailable reports whether err is a breaker rejection.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
