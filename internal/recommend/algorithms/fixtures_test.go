// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"math"
	"testing"
)

const floatTolerance = 1e-9

// demoDocs is the six-film catalog used across the package tests.
func demoDocs() []Document {
	return []Document{
		{ID: 1, Text: "An astronaut struggles with loneliness while exploring distant galaxies. Dramatic sci-fi about isolation and discovery.", Tags: []string{"sci-fi", "drama"}},
		{ID: 2, Text: "A young musician falls in love and fights for her big break in a bustling city. Heartfelt romance with music.", Tags: []string{"romance", "music"}},
		{ID: 3, Text: "Detectives investigate strange occurrences at a Victorian manor. A twisting whodunit with dark secrets.", Tags: []string{"mystery", "thriller"}},
		{ID: 4, Text: "An interstellar war unfolds between rival fleets. Action-packed space opera with epic battles.", Tags: []string{"action", "sci-fi"}},
		{ID: 5, Text: "A group of comedians try to save their favorite club from closing. A feel-good comedy about friendship and stand-up.", Tags: []string{"comedy"}},
		{ID: 6, Text: "A psychological thriller exploring memory and identity after a traumatic event.", Tags: []string{"thriller", "drama"}},
	}
}

func demoRatings() UserRatings {
	return UserRatings{
		101: {1: 5.0, 4: 4.0},
		102: {2: 5.0, 5: 4.0},
		103: {3: 5.0, 6: 4.5},
	}
}

func demoItemIDs() []int {
	return []int{1, 2, 3, 4, 5, 6}
}

func demoSimilarity(t *testing.T) SimilarityMatrix {
	t.Helper()
	sims, err := BuildItemSimilarity(context.Background(), demoItemIDs(), demoRatings())
	if err != nil {
		t.Fatalf("BuildItemSimilarity() error = %v", err)
	}
	return sims
}

func ids(list []Scored) []int {
	out := make([]int, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertRanked(t *testing.T, list []Scored) {
	t.Helper()
	for i := 1; i < len(list); i++ {
		if ranksAbove(list[i], list[i-1]) {
			t.Errorf("list not ranked at %d: %+v before %+v", i, list[i-1], list[i])
		}
	}
}
