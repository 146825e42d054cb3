// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

// SimilarByContent ranks every other item with a content vector by cosine
// similarity to itemID. Returns an empty slice if itemID has no vector.
func SimilarByContent(vectors map[int]TermVector, itemID, k int) []Scored {
	target, ok := vectors[itemID]
	if !ok {
		return []Scored{}
	}

	scores := make(map[int]float64, len(vectors))
	for id, vec := range vectors {
		if id != itemID {
			scores[id] = TermCosine(target, vec)
		}
	}
	return topKFromMap(scores, k)
}

// SimilarByRatings ranks the items in itemID's similarity row.
func SimilarByRatings(sims SimilarityMatrix, itemID, k int) []Scored {
	return topKFromMap(sims.Row(itemID), k)
}
