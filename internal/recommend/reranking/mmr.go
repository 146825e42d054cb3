// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package reranking

import (
	"math"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// maxRerankSize bounds the pairwise similarity matrix.
const maxRerankSize = 1000

// SimilarityFunc returns the similarity of two catalog items in [0, 1].
type SimilarityFunc func(a, b recommend.Item) float64

// MMR implements Maximal Marginal Relevance reranking.
//
// Each step picks the candidate maximizing
//
//	lambda * rel(i) - (1-lambda) * max(sim(i, s)) for s in selected
//
// where rel is the candidate's score min-max normalized over the input list,
// so content cosines, predicted ratings and fused rank points all land in
// [0, 1]. Lambda 1 keeps the input order; lambda 0 ranks by dissimilarity only.
//
// Reference: Carbonell & Goldstein (1998), "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	lambda float64
	sim    SimilarityFunc
}

// NewMMR creates an MMR reranker. Lambda is clamped to [0, 1]. A nil sim
// falls back to TagSimilarity.
func NewMMR(lambda float64, sim SimilarityFunc) *MMR {
	if lambda < 0 || math.IsNaN(lambda) {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	if sim == nil {
		sim = TagSimilarity
	}
	return &MMR{lambda: lambda, sim: sim}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Rerank returns up to k items from the ranked candidate list, reordered for
// diversity. Scores are left untouched. Ties keep the input order, so the
// input's score-then-id ordering breaks them.
//
//nolint:gocritic // rangeValCopy: ScoredItem is small
func (m *MMR) Rerank(items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) == 0 || k <= 0 {
		return []recommend.ScoredItem{}
	}

	if len(items) > maxRerankSize {
		items = items[:maxRerankSize]
	}
	if k > len(items) {
		k = len(items)
	}

	if m.lambda >= 1 {
		out := make([]recommend.ScoredItem, k)
		copy(out, items[:k])
		return out
	}

	relevance := normalizeScores(items)
	similarities := m.buildSimilarityMatrix(items)

	selected := make([]recommend.ScoredItem, 0, k)
	taken := make([]bool, len(items))
	// maxSim[i] is the highest similarity of candidate i to any selected item.
	maxSim := make([]float64, len(items))

	for len(selected) < k {
		bestIdx := -1
		bestMMR := math.Inf(-1)

		for i := range items {
			if taken[i] {
				continue
			}
			score := m.lambda*relevance[i] - (1-m.lambda)*maxSim[i]
			if score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}

		taken[bestIdx] = true
		selected = append(selected, items[bestIdx])
		for i := range items {
			if s := similarities[i][bestIdx]; s > maxSim[i] {
				maxSim[i] = s
			}
		}
	}

	return selected
}

func normalizeScores(items []recommend.ScoredItem) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range items {
		lo = math.Min(lo, items[i].Score)
		hi = math.Max(hi, items[i].Score)
	}

	out := make([]float64, len(items))
	spread := hi - lo
	for i := range items {
		if spread <= 0 {
			out[i] = 1
			continue
		}
		out[i] = (items[i].Score - lo) / spread
	}
	return out
}

func (m *MMR) buildSimilarityMatrix(items []recommend.ScoredItem) [][]float64 {
	n := len(items)
	similarities := make([][]float64, n)
	for i := range similarities {
		similarities[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := m.sim(items[i].Item, items[j].Item)
			similarities[i][j] = sim
			similarities[j][i] = sim
		}
	}

	return similarities
}

// TagSimilarity is the Jaccard similarity of two items' tag sets.
// Tags are already lower-cased and de-duplicated by recommend.NewItem.
func TagSimilarity(a, b recommend.Item) float64 {
	if len(a.Tags) == 0 && len(b.Tags) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a.Tags))
	for _, tag := range a.Tags {
		setA[tag] = struct{}{}
	}

	intersection := 0
	setB := make(map[string]struct{}, len(b.Tags))
	for _, tag := range b.Tags {
		if _, dup := setB[tag]; dup {
			continue
		}
		setB[tag] = struct{}{}
		if _, ok := setA[tag]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
