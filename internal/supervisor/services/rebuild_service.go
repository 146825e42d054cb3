// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/recommend"
)

const defaultRebuildInterval = time.Hour

// Rebuilder recomputes the engine's content vectors and similarity matrix.
// *recommend.Engine satisfies it.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// RebuildServiceConfig controls the rebuild schedule.
type RebuildServiceConfig struct {
	// Interval between scheduled rebuilds. Non-positive selects one hour.
	Interval time.Duration

	// OnStart triggers a rebuild as soon as the service starts.
	OnStart bool
}

// RebuildService periodically rebuilds the engine snapshot so ratings
// accepted through Rate reach the similarity matrix.
type RebuildService struct {
	engine Rebuilder
	config RebuildServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRebuildService creates the rebuild loop for engine.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewRebuildService(engine Rebuilder, cfg RebuildServiceConfig, logger zerolog.Logger) *RebuildService {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultRebuildInterval
	}
	return &RebuildService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "rebuild").Logger(),
		name:   "rebuild-service",
	}
}

// Serve implements suture.Service. Rebuild failures are logged and retried
// on the next tick; they never stop the loop.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_start", s.config.OnStart).
		Dur("interval", s.config.Interval).
		Msg("rebuild service starting")

	if s.config.OnStart {
		s.rebuild(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rebuild service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.rebuild(ctx)
		}
	}
}

func (s *RebuildService) rebuild(ctx context.Context) {
	err := s.engine.Rebuild(ctx)
	switch {
	case err == nil:
	case errors.Is(err, recommend.ErrRebuildInProgress):
		s.logger.Info().Msg("rebuild skipped, another rebuild is running")
	case ctx.Err() != nil:
		// shutting down
	default:
		s.logger.Warn().Err(err).Msg("scheduled rebuild failed")
	}
}

// String returns the service name for logging.
func (s *RebuildService) String() string {
	return s.name
}
