// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import "math"

// Default pool sizing for hybrid fusion.
const (
	DefaultMinPool        = 50
	DefaultPoolMultiplier = 3
)

// PoolSize returns max(minPool, multiplier*k), the number of candidates to
// request from each recommender before fusion. The product saturates at
// math.MaxInt instead of overflowing.
func PoolSize(k, minPool, multiplier int) int {
	if multiplier > 0 && k > math.MaxInt/multiplier {
		return math.MaxInt
	}
	return max(minPool, multiplier*k)
}

// Fuse merges two ranked lists by rank position.
//
// An item at position i of a list of length L contributes (L - i) * weight,
// where weight is contentWeight for the content list and 1 - contentWeight for
// the collaborative list. Contributions are summed per item and the k best are
// returned.
func Fuse(content, collaborative []Scored, contentWeight float64, k int) []Scored {
	if k <= 0 {
		return []Scored{}
	}

	fused := make(map[int]float64, len(content)+len(collaborative))
	addRanks(fused, content, contentWeight)
	addRanks(fused, collaborative, 1-contentWeight)

	return topKFromMap(fused, k)
}

func addRanks(fused map[int]float64, list []Scored, weight float64) {
	n := len(list)
	for i, s := range list {
		fused[s.ID] += float64(n-i) * weight
	}
}
