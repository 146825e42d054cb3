// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"strings"
)

// minTokenLength is the shortest token kept by Tokenize.
const minTokenLength = 2

// Tokenize lower-cases text, replaces every rune outside [a-z0-9 ] with a space,
// splits on whitespace and drops tokens shorter than two characters.
// Tokens are returned in left-to-right order. Empty input yields nil.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}

	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
