// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package dataset loads the item catalog and initial ratings.

A dataset file is YAML (.yaml, .yml) or JSON (.json):

	items:
	  - id: 1
	    title: The Space Between Stars
	    description: An astronaut struggles with loneliness...
	    tags: [Sci-Fi, Drama]
	ratings:
	  - user_id: 101
	    item_id: 1
	    rating: 5

Demo returns a small built-in dataset of six films and three users that the
server falls back to when no dataset path is configured.
*/
package dataset
