// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package algorithms implements the scoring primitives used by the recommendation engine.
//
// The package is a leaf: it works on plain ids, term vectors and rating maps so that
// the engine can compose the primitives without import cycles.
//
// # Components
//
// Content signal:
//   - Tokenize: lower-case alphanumeric tokenizer
//   - BuildContentVectors: smoothed TF-IDF vectors, L2-normalized per item
//   - ContentRecommender: rating-weighted user profile matched against item vectors
//
// Collaborative signal:
//   - BuildItemSimilarity: item-item cosine over the inverted rating matrix
//   - ItemCF: similarity-weighted aggregation of the user's own ratings
//
// Fusion:
//   - Fuse: Borda-style rank fusion of two ranked lists
//
// Selection:
//   - TopK: bounded min-heap, O(n log k)
//
// # Ordering
//
// Every ranked list is ordered by descending score. Equal scores are ordered by
// ascending item id so that output does not depend on map iteration order.
//
// # Thread Safety
//
// Built structures (vectors, similarity matrices, recommenders) are never mutated
// after construction and may be shared across goroutines without locking.
package algorithms
