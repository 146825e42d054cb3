// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/store"
)

// EngineComponents holds the engine and its optional persistence.
type EngineComponents struct {
	Engine *recommend.Engine

	// Store is nil when no store path is configured.
	Store *store.RatingStore
}

// Close releases the rating store, if any.
func (c *EngineComponents) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// loadDataset reads the configured catalog or falls back to the demo catalog.
//
//nolint:gocritic // zerolog.Logger is passed by value
func loadDataset(cfg *config.DataConfig, logger zerolog.Logger) (*dataset.Dataset, error) {
	if cfg.DatasetPath == "" {
		logger.Info().Msg("no dataset path configured, serving demo catalog")
		return dataset.Demo(), nil
	}

	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info().
		Str("path", cfg.DatasetPath).
		Int("items", len(ds.Items)).
		Int("ratings", len(ds.Ratings)).
		Msg("dataset loaded")
	return ds, nil
}

// replayStore appends persisted ratings to ds so they override the dataset's
// ratings for the same (user, item). Ratings for items no longer in the
// catalog, or outside the configured range, are skipped.
//
//nolint:gocritic // zerolog.Logger is passed by value
func replayStore(ctx context.Context, st *store.RatingStore, ds *dataset.Dataset, scoring recommend.ScoringConfig, logger zerolog.Logger) error {
	known := make(map[int]struct{}, len(ds.Items))
	for _, item := range ds.Items {
		known[item.ID] = struct{}{}
	}

	var replayed, skipped int
	err := st.Replay(ctx, func(r recommend.Rating) error {
		if _, ok := known[r.ItemID]; !ok || !inScale(r.Value, scoring) {
			skipped++
			logger.Warn().
				Int("user_id", r.UserID).
				Int("item_id", r.ItemID).
				Float64("rating", r.Value).
				Msg("skipping stored rating")
			return nil
		}
		ds.Ratings = append(ds.Ratings, r)
		replayed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay rating store: %w", err)
	}

	logger.Info().Int("replayed", replayed).Int("skipped", skipped).Msg("rating store replayed")
	return nil
}

// initEngine loads the catalog, replays the rating store and builds the engine.
//
//nolint:gocritic // zerolog.Logger is passed by value
func initEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*EngineComponents, error) {
	ds, err := loadDataset(&cfg.Data, logger)
	if err != nil {
		return nil, err
	}

	engineCfg := cfg.Recommend.EngineConfig()
	components := &EngineComponents{}

	if cfg.Data.StorePath != "" {
		st, err := store.Open(store.Options{Path: cfg.Data.StorePath, SyncWrites: true}, logger)
		if err != nil {
			return nil, fmt.Errorf("open rating store: %w", err)
		}
		components.Store = st

		if err := replayStore(ctx, st, ds, engineCfg.Scoring, logger); err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	engine, err := recommend.NewEngine(engineCfg, ds.Items, ds.Users(), logger)
	if err != nil {
		_ = components.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	components.Engine = engine

	status := engine.Status()
	logger.Info().
		Int("items", status.Items).
		Int("users", status.Users).
		Int("snapshot_version", status.SnapshotVersion).
		Msg("engine initialized")

	return components, nil
}

// inScale reports whether v lies in [MinRating, MaxRating]. NaN never does.
func inScale(v float64, scoring recommend.ScoringConfig) bool {
	return v >= scoring.MinRating && v <= scoring.MaxRating
}
