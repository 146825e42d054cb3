// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package store persists user ratings in BadgerDB so they survive restarts.
//
// Each rating is stored under "rating:{user}:{item}" as a JSON record, so a
// later rating of the same item overwrites the earlier one. On startup the
// server replays every record into the engine before the first rebuild.
//
// GuardedStore puts a circuit breaker in front of Save. After repeated write
// failures it rejects writes with gobreaker.ErrOpenState until the store
// recovers, and the API answers those with 503.
package store
