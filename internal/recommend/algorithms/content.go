// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"math"
)

// ContentRecommender ranks unrated items by cosine similarity between their
// content vector and a profile built from the user's ratings.
//
// A rating above the pivot pulls the profile toward the item, a rating below
// pushes it away. A rating equal to the pivot contributes nothing.
type ContentRecommender struct {
	vectors map[int]TermVector
	pivot   float64
}

// NewContentRecommender creates a recommender over prebuilt content vectors.
// vectors must not be mutated afterwards.
func NewContentRecommender(vectors map[int]TermVector, pivot float64) *ContentRecommender {
	return &ContentRecommender{
		vectors: vectors,
		pivot:   pivot,
	}
}

// Profile builds the preference profile for ratings.
//
//	profile = sum((rating - pivot) * vector(item)) / sum(|rating - pivot|)
//
// Items without a content vector are skipped and do not count toward the
// normalization factor. When the factor is zero the raw sum is returned.
func (c *ContentRecommender) Profile(ratings map[int]float64) TermVector {
	profile := make(TermVector)
	var totalWeight float64

	for itemID, rating := range ratings {
		vec, ok := c.vectors[itemID]
		if !ok {
			continue
		}

		delta := rating - c.pivot
		totalWeight += math.Abs(delta)
		for term, w := range vec {
			profile[term] += delta * w
		}
	}

	if totalWeight != 0 {
		for term, w := range profile {
			profile[term] = w / totalWeight
		}
	}

	return profile
}

// Recommend returns up to k items the user has not rated, best first.
// A user without ratings gets an empty list.
func (c *ContentRecommender) Recommend(ratings map[int]float64, k int) []Scored {
	if k <= 0 || len(ratings) == 0 || len(c.vectors) == 0 {
		return []Scored{}
	}
	k = min(k, len(c.vectors))

	profile := c.Profile(ratings)

	h := newBoundedHeap(k, len(c.vectors))
	for itemID, vec := range c.vectors {
		if _, seen := ratings[itemID]; seen {
			continue
		}
		h.Offer(Scored{ID: itemID, Score: TermCosine(profile, vec)})
	}

	return h.Drain()
}
