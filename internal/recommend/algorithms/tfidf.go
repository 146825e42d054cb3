// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"math"
)

// TermVector is a sparse term -> weight mapping.
type TermVector map[string]float64

// Norm returns the Euclidean norm of the vector.
func (v TermVector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Document is the content of one catalog item as seen by the vector builder.
type Document struct {
	// ID is the item identifier.
	ID int

	// Text is free text, tokenized with Tokenize.
	Text string

	// Tags are added as whole terms, once per tag, without tokenization.
	Tags []string
}

// terms returns the token multiset of the document.
func (d Document) terms() []string {
	tokens := Tokenize(d.Text)
	return append(tokens, d.Tags...)
}

// BuildContentVectors computes one TF-IDF vector per document.
//
//	idf(t)      = ln((N + 1) / (1 + df(t))) + 1
//	weight(i,t) = tf(i,t) * idf(t)
//
// Each vector is divided by its Euclidean norm. A document without terms maps to
// an empty, non-nil vector.
func BuildContentVectors(docs []Document) map[int]TermVector {
	termCounts := make([]map[string]int, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		counts := make(map[string]int)
		for _, t := range doc.terms() {
			if _, seen := counts[t]; !seen {
				df[t]++
			}
			counts[t]++
		}
		termCounts[i] = counts
	}

	n := float64(len(docs))
	vectors := make(map[int]TermVector, len(docs))

	for i, doc := range docs {
		vec := make(TermVector, len(termCounts[i]))
		for term, tf := range termCounts[i] {
			vec[term] = float64(tf) * smoothedIDF(n, df[term])
		}

		if norm := vec.Norm(); norm > 0 {
			for term, w := range vec {
				vec[term] = w / norm
			}
		}

		vectors[doc.ID] = vec
	}

	return vectors
}

// smoothedIDF is strictly positive, including for terms present in every document.
func smoothedIDF(n float64, df int) float64 {
	return math.Log((n+1)/(1+float64(df))) + 1
}
