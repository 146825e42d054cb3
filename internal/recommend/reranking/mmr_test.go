// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package reranking

import (
	"math"
	"slices"
	"testing"

	"github.com/tomtom215/cinematch/internal/recommend"
)

func scored(id int, score float64, tags ...string) recommend.ScoredItem {
	return recommend.ScoredItem{Item: recommend.NewItem(id, "", "", tags...), Score: score}
}

func ids(items []recommend.ScoredItem) []int {
	out := make([]int, len(items))
	for i, s := range items {
		out[i] = s.Item.ID
	}
	return out
}

func TestNewMMR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lambda     float64
		wantLambda float64
	}{
		{"normal value", 0.7, 0.7},
		{"zero", 0, 0},
		{"one", 1, 1},
		{"negative clamped", -0.5, 0},
		{"above one clamped", 1.5, 1},
		{"NaN clamped", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mmr := NewMMR(tt.lambda, nil)
			if mmr.lambda != tt.wantLambda {
				t.Errorf("lambda = %v, want %v", mmr.lambda, tt.wantLambda)
			}
			if mmr.sim == nil {
				t.Error("nil sim should fall back to TagSimilarity")
			}
			if mmr.Name() != "mmr" {
				t.Errorf("Name() = %q", mmr.Name())
			}
		})
	}
}

func TestMMR_Rerank(t *testing.T) {
	t.Parallel()

	// The three best items share a tag; the tail is diverse.
	items := []recommend.ScoredItem{
		scored(1, 1.0, "action"),
		scored(2, 0.95, "action"),
		scored(3, 0.9, "action"),
		scored(4, 0.5, "comedy"),
		scored(5, 0.4, "drama"),
	}

	tests := []struct {
		name   string
		lambda float64
		k      int
		want   []int
	}{
		{"pure relevance keeps order", 1, 3, []int{1, 2, 3}},
		{"strong diversity", 0.3, 3, []int{1, 4, 5}},
		{"pure diversity", 0, 3, []int{1, 4, 5}},
		{"k larger than input", 1, 10, []int{1, 2, 3, 4, 5}},
		{"k zero", 0.5, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(NewMMR(tt.lambda, nil).Rerank(items, tt.k))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Rerank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMMR_Rerank_KeepsScoresAndInput(t *testing.T) {
	t.Parallel()

	items := []recommend.ScoredItem{
		scored(1, 4.5, "a"),
		scored(2, 4.0, "a"),
		scored(3, 3.0, "b"),
	}
	before := slices.Clone(items)

	got := NewMMR(0.2, nil).Rerank(items, 2)
	if !slices.Equal(ids(got), []int{1, 3}) {
		t.Fatalf("Rerank() = %v, want [1 3]", ids(got))
	}
	if got[1].Score != 3.0 {
		t.Errorf("score changed: %v", got[1].Score)
	}
	if !slices.Equal(ids(items), ids(before)) {
		t.Error("input slice was reordered")
	}
}

func TestMMR_Rerank_EqualScoresKeepInputOrder(t *testing.T) {
	t.Parallel()

	items := []recommend.ScoredItem{scored(3, 1), scored(7, 1), scored(9, 1)}
	got := NewMMR(0.5, nil).Rerank(items, 3)
	if !slices.Equal(ids(got), []int{3, 7, 9}) {
		t.Errorf("Rerank() = %v, want [3 7 9]", ids(got))
	}
}

func TestMMR_Rerank_CustomSimilarity(t *testing.T) {
	t.Parallel()

	// Items 1 and 2 are near-duplicates under the custom similarity.
	sim := func(a, b recommend.Item) float64 {
		if (a.ID == 1 && b.ID == 2) || (a.ID == 2 && b.ID == 1) {
			return 0.9
		}
		return 0
	}
	items := []recommend.ScoredItem{scored(1, 1.0), scored(2, 0.9), scored(3, 0.8)}

	got := NewMMR(0.5, sim).Rerank(items, 2)
	if !slices.Equal(ids(got), []int{1, 3}) {
		t.Errorf("Rerank() = %v, want [1 3]", ids(got))
	}
}

func TestMMR_Rerank_EmptyInput(t *testing.T) {
	t.Parallel()

	mmr := NewMMR(0.7, nil)
	if got := mmr.Rerank(nil, 5); got == nil || len(got) != 0 {
		t.Errorf("Rerank(nil) = %v, want empty non-nil", got)
	}
}

func TestTagSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"action", "sci-fi"}, []string{"Sci-Fi", "Action"}, 1},
		{"no overlap", []string{"action"}, []string{"comedy"}, 0},
		{"partial overlap", []string{"action", "sci-fi"}, []string{"action", "drama"}, 1.0 / 3.0},
		{"both empty", nil, nil, 0},
		{"one empty", []string{"action"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := recommend.NewItem(1, "", "", tt.a...)
			b := recommend.NewItem(2, "", "", tt.b...)
			if got := TagSimilarity(a, b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("TagSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
