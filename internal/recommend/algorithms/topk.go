// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

// Scored is an item id with its score.
type Scored struct {
	ID    int
	Score float64
}

// ranksAbove reports whether a is ordered before b in a ranked list:
// higher score first, then lower id.
func ranksAbove(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}

// boundedHeap keeps the k best entries seen so far.
// The root is the worst retained entry, so a better candidate replaces it in O(log k).
type boundedHeap struct {
	items []Scored
	limit int
}

// newBoundedHeap keeps up to limit entries out of at most n candidates.
func newBoundedHeap(limit, n int) *boundedHeap {
	return &boundedHeap{
		items: make([]Scored, 0, max(0, min(limit, n))),
		limit: limit,
	}
}

// Offer adds s if the heap has room or s ranks above the current worst entry.
func (h *boundedHeap) Offer(s Scored) {
	if h.limit <= 0 {
		return
	}
	if len(h.items) < h.limit {
		h.items = append(h.items, s)
		h.bubbleUp(len(h.items) - 1)
		return
	}
	if ranksAbove(s, h.items[0]) {
		h.items[0] = s
		h.bubbleDown(0)
	}
}

// Drain empties the heap and returns its entries best first.
func (h *boundedHeap) Drain() []Scored {
	out := make([]Scored, len(h.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = h.items[0]
		last := len(h.items) - 1
		h.items[0] = h.items[last]
		h.items = h.items[:last]
		if len(h.items) > 0 {
			h.bubbleDown(0)
		}
	}
	return out
}

// less orders the heap so that the worst entry sits at the root.
func (h *boundedHeap) less(i, j int) bool {
	return ranksAbove(h.items[j], h.items[i])
}

func (h *boundedHeap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *boundedHeap) bubbleDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}

		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// TopK returns the k best candidates ordered by descending score, ties by
// ascending id. Returns an empty slice when k <= 0.
func TopK(candidates []Scored, k int) []Scored {
	if k <= 0 || len(candidates) == 0 {
		return []Scored{}
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	h := newBoundedHeap(k, len(candidates))
	for _, c := range candidates {
		h.Offer(c)
	}
	return h.Drain()
}

// topKFromMap is TopK over an id -> score map.
func topKFromMap(scores map[int]float64, k int) []Scored {
	if k <= 0 || len(scores) == 0 {
		return []Scored{}
	}
	if k > len(scores) {
		k = len(scores)
	}

	h := newBoundedHeap(k, len(scores))
	for id, score := range scores {
		h.Offer(Scored{ID: id, Score: score})
	}
	return h.Drain()
}
