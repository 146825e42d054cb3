// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"math"
)

// TermCosine returns the dot product of two term vectors.
// Vectors produced by BuildContentVectors are unit length, so the dot product is
// their cosine similarity. Returns 0 if either vector is empty.
func TermCosine(a, b TermVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot float64
	for term, w := range small {
		dot += w * large[term]
	}
	return dot
}

// RatingCosine returns dot(a, b) / (|a| * |b|) over two sparse rating vectors.
// Returns 0 if either vector is empty or has zero norm. Ratings are not centered.
func RatingCosine(a, b map[int]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot, normA, normB float64
	for id, v := range small {
		dot += v * large[id]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
