// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import "github.com/tomtom215/cinematch/internal/recommend"

// Demo returns the built-in six-film, three-user dataset.
func Demo() *Dataset {
	return &Dataset{
		Items: []recommend.Item{
			recommend.NewItem(1, "The Space Between Stars",
				"An astronaut struggles with loneliness while exploring distant galaxies. Dramatic sci-fi about isolation and discovery.",
				"Sci-Fi", "Drama"),
			recommend.NewItem(2, "Romantic Rhapsody",
				"A young musician falls in love and fights for her big break in a bustling city. Heartfelt romance with music.",
				"Romance", "Music"),
			recommend.NewItem(3, "Mystery Manor",
				"Detectives investigate strange occurrences at a Victorian manor. A twisting whodunit with dark secrets.",
				"Mystery", "Thriller"),
			recommend.NewItem(4, "Galactic Battles",
				"An interstellar war unfolds between rival fleets. Action-packed space opera with epic battles.",
				"Action", "Sci-Fi"),
			recommend.NewItem(5, "City of Laughter",
				"A group of comedians try to save their favorite club from closing. A feel-good comedy about friendship and stand-up.",
				"Comedy"),
			recommend.NewItem(6, "Secrets of the Mind",
				"A psychological thriller exploring memory and identity after a traumatic event.",
				"Thriller", "Drama"),
		},
		Ratings: []recommend.Rating{
			{UserID: 101, ItemID: 1, Value: 5.0},
			{UserID: 101, ItemID: 4, Value: 4.0},
			{UserID: 102, ItemID: 2, Value: 5.0},
			{UserID: 102, ItemID: 5, Value: 4.0},
			{UserID: 103, ItemID: 3, Value: 5.0},
			{UserID: 103, ItemID: 6, Value: 4.5},
		},
	}
}
