// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"testing"
)

func TestItemCF_Demo(t *testing.T) {
	cf := NewItemCF(demoSimilarity(t))

	got := cf.Recommend(demoRatings()[101], 3)
	if !equalIDs(ids(got), []int{2, 3, 5}) {
		t.Fatalf("Recommend() = %v, want [2 3 5]", ids(got))
	}
	for _, s := range got {
		if s.Score != 0 {
			t.Errorf("score(%d) = %v, want 0", s.ID, s.Score)
		}
	}
}

func TestItemCF_Predict(t *testing.T) {
	sims := SimilarityMatrix{
		1: {2: 0.5, 3: -0.5, 4: 0.9},
		4: {2: 0.25, 3: 0, 1: 0.9},
	}
	cf := NewItemCF(sims)

	got := cf.Predict(map[int]float64{1: 4, 4: 2})

	want := map[int]float64{
		2: 2.5 / 0.75,
		3: -4,
	}
	if len(got) != len(want) {
		t.Fatalf("Predict() = %v, want %v", got, want)
	}
	for id, w := range want {
		if !approxEqual(got[id], w, floatTolerance) {
			t.Errorf("Predict()[%d] = %v, want %v", id, got[id], w)
		}
	}
}

func TestItemCF_ZeroWeightDivisor(t *testing.T) {
	cf := NewItemCF(SimilarityMatrix{1: {2: 0}})

	got := cf.Predict(map[int]float64{1: 5})
	if score, ok := got[2]; !ok || score != 0 {
		t.Errorf("Predict()[2] = %v (present %v), want 0", score, ok)
	}
}

func TestItemCF_Edges(t *testing.T) {
	cf := NewItemCF(demoSimilarity(t))

	tests := []struct {
		name    string
		ratings map[int]float64
		k       int
		wantLen int
	}{
		{name: "no ratings", ratings: nil, k: 3, wantLen: 0},
		{name: "zero k", ratings: demoRatings()[101], k: 0, wantLen: 0},
		{name: "capped by candidates", ratings: demoRatings()[101], k: 50, wantLen: 4},
		{name: "unknown rated item", ratings: map[int]float64{99: 5}, k: 3, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cf.Recommend(tt.ratings, tt.k)
			if len(got) != tt.wantLen {
				t.Errorf("len(Recommend()) = %d, want %d", len(got), tt.wantLen)
			}
			for _, s := range got {
				if _, seen := tt.ratings[s.ID]; seen {
					t.Errorf("recommended rated item %d", s.ID)
				}
			}
		})
	}
}
