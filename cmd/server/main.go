// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/store"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.LoggerConfig())
	logger := logging.Logger()

	logger.Info().
		Str("dataset", cfg.Data.DatasetPath).
		Str("store", cfg.Data.StorePath).
		Float64("content_weight", cfg.Recommend.HybridContentWeight).
		Msg("Starting cinematch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := initEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing rating store")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	addRebuildService(ctx, tree, components, cfg, logger)

	server := newHTTPServer(cfg, components, logger)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	logger.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logger.Info().Msg("cinematch stopped")
}

// addRebuildService schedules snapshot rebuilds. A zero interval disables the
// loop, in which case an on-start rebuild runs once inline.
//
//nolint:gocritic // zerolog.Logger is passed by value
func addRebuildService(ctx context.Context, tree *supervisor.SupervisorTree, c *EngineComponents, cfg *config.Config, logger zerolog.Logger) {
	if cfg.Recommend.RebuildInterval <= 0 {
		logger.Info().Msg("Scheduled rebuilds disabled")
		if cfg.Recommend.RebuildOnStart {
			if err := c.Engine.Rebuild(ctx); err != nil {
				logger.Warn().Err(err).Msg("Startup rebuild failed")
			}
		}
		return
	}

	tree.AddEngineService(services.NewRebuildService(c.Engine, services.RebuildServiceConfig{
		Interval: cfg.Recommend.RebuildInterval,
		OnStart:  cfg.Recommend.RebuildOnStart,
	}, logger))
}

// newHTTPServer builds the API router and wraps it in an http.Server.
// Rating writes go through a circuit breaker when a store is configured.
//
//nolint:gocritic // zerolog.Logger is passed by value
func newHTTPServer(cfg *config.Config, c *EngineComponents, logger zerolog.Logger) *http.Server {
	var ratingStore api.RatingStore
	if c.Store != nil {
		ratingStore = store.NewGuardedStore(c.Store, store.DefaultBreakerConfig(), logger)
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled

	handler := api.NewHandler(c.Engine, ratingStore, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		RequestTimeout: cfg.Server.Timeout,
		Middleware:     api.NewChiMiddleware(mwCfg),
	}, logger)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
