// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"math"
)

// ItemCF predicts a user's score for an unrated item from the similarity of
// that item to the items the user has rated.
//
//	score(i) = sum(sim(j, i) * rating(j)) / sum(|sim(j, i)|)
//
// over the user's rated items j. When the weight sum is zero the raw
// accumulated score is returned unchanged. Negative similarities are kept
// and may drive predictions below zero.
type ItemCF struct {
	sims SimilarityMatrix
}

// NewItemCF creates an item-based recommender over a prebuilt similarity matrix.
func NewItemCF(sims SimilarityMatrix) *ItemCF {
	return &ItemCF{sims: sims}
}

// Predict returns the predicted score for every candidate reachable from the
// similarity rows of the user's rated items.
func (cf *ItemCF) Predict(ratings map[int]float64) map[int]float64 {
	scores := make(map[int]float64)
	weights := make(map[int]float64)

	for seenID, rating := range ratings {
		for candidate, sim := range cf.sims.Row(seenID) {
			if _, seen := ratings[candidate]; seen {
				continue
			}
			scores[candidate] += sim * rating
			weights[candidate] += math.Abs(sim)
		}
	}

	for id, score := range scores {
		if w := weights[id]; w != 0 {
			scores[id] = score / w
		}
	}

	return scores
}

// Recommend returns up to k unrated items, best first.
func (cf *ItemCF) Recommend(ratings map[int]float64, k int) []Scored {
	if k <= 0 || len(ratings) == 0 {
		return []Scored{}
	}
	return topKFromMap(cf.Predict(ratings), k)
}
