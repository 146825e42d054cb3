// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements a hybrid content and collaborative recommendation engine.
//
// # Architecture
//
// Two signal sources are combined:
//
//   - Content: TF-IDF vectors over item descriptions and tags, matched against
//     a profile built from the user's ratings relative to a neutral pivot.
//   - Collaborative: item-item cosine similarity over the rating matrix,
//     aggregated over the items the user has rated.
//
// The hybrid mode fuses the two ranked lists by rank position, since cosine
// scores and predicted ratings are not on a comparable scale.
//
// # Snapshots
//
// Content vectors and the item similarity matrix are derived data. They are
// built once by NewEngine and replaced as a whole by Rebuild; a request always
// reads a single consistent snapshot. Ratings added with Rate feed the content
// profile immediately and the similarity matrix after the next rebuild.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), items, users, logger)
//	if err != nil {
//	    return err
//	}
//
//	recs, err := engine.RecommendHybrid(101, 5, 0.6)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: 101,
//	    Mode:   recommend.ModeContent,
//	})
//
// # Ordering
//
// Lists are ordered by descending score. Equal scores are ordered by ascending
// item id.
//
// # Errors
//
// Unknown users and users without ratings get an empty list, not an error.
// Negative k and out-of-range weights are rejected with ErrInvalidK and
// ErrInvalidWeight.
package recommend
