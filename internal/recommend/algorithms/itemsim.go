// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
)

// SimilarityMatrix maps an item id to its row of item id -> similarity.
// Rows never contain the item itself.
type SimilarityMatrix map[int]map[int]float64

// Row returns the similarity row for itemID, or nil if the item is unknown.
func (m SimilarityMatrix) Row(itemID int) map[int]float64 {
	return m[itemID]
}

// Similarity returns the similarity between a and b, or 0 if either is unknown.
func (m SimilarityMatrix) Similarity(a, b int) float64 {
	return m[a][b]
}

// UserRatings maps a user id to the user's item id -> rating map.
type UserRatings map[int]map[int]float64

// invert transposes user -> item -> rating into item -> user -> rating.
func (r UserRatings) invert() map[int]map[int]float64 {
	byItem := make(map[int]map[int]float64)
	for userID, ratings := range r {
		for itemID, rating := range ratings {
			raters, ok := byItem[itemID]
			if !ok {
				raters = make(map[int]float64)
				byItem[itemID] = raters
			}
			raters[userID] = rating
		}
	}
	return byItem
}

// BuildItemSimilarity computes RatingCosine for every ordered pair of distinct
// catalog items. Every catalog item gets a row holding every other catalog item,
// including zero similarities. Ratings for items outside the catalog are ignored.
//
// The context is checked once per row.
func BuildItemSimilarity(ctx context.Context, itemIDs []int, ratings UserRatings) (SimilarityMatrix, error) {
	byItem := ratings.invert()
	sims := make(SimilarityMatrix, len(itemIDs))

	for _, a := range itemIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := make(map[int]float64, len(itemIDs))
		vecA := byItem[a]
		for _, b := range itemIDs {
			if a == b {
				continue
			}
			row[b] = RatingCosine(vecA, byItem[b])
		}
		sims[a] = row
	}

	return sims, nil
}
