// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package reranking reorders finished recommendation lists for diversity.
//
// Rerankers run after the engine has ranked candidates by relevance:
//
//	Engine.Recommend (pool of candidates) -> MMR.Rerank (k items)
//
// The API requests a larger candidate pool from the engine whenever a caller
// asks for diversity, then lets MMR pick k items that are relevant but not
// redundant. Item similarity defaults to tag Jaccard; the API passes the
// engine's content vector cosine instead.
package reranking
