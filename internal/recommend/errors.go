// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "errors"

var (
	// ErrInvalidK is returned for a negative list size.
	ErrInvalidK = errors.New("k must be non-negative")

	// ErrInvalidWeight is returned for a content weight outside [0, 1] or NaN.
	ErrInvalidWeight = errors.New("content weight must be in [0, 1]")

	// ErrInvalidMode is returned by ParseMode for an unknown mode name.
	ErrInvalidMode = errors.New("unknown recommendation mode")

	// ErrUnknownItem is returned when a rating references an item outside the catalog.
	ErrUnknownItem = errors.New("unknown item")

	// ErrInvalidRating is returned for a rating value outside the configured range.
	ErrInvalidRating = errors.New("rating out of range")

	// ErrInvalidUser is returned for a non-positive user id.
	ErrInvalidUser = errors.New("user id must be positive")

	// ErrDuplicateItem is returned by NewEngine when two catalog items share an id.
	ErrDuplicateItem = errors.New("duplicate item id")

	// ErrDuplicateUser is returned by NewEngine when two users share an id.
	ErrDuplicateUser = errors.New("duplicate user id")

	// ErrRebuildInProgress is returned when Rebuild is called while another rebuild runs.
	ErrRebuildInProgress = errors.New("rebuild already in progress")
)
