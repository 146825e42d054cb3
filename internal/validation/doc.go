// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation validates decoded API requests with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide. Two custom tags are
// registered: finite (rejects NaN and ±Inf floats) and recmode (accepts the
// recommendation mode names). Errors convert to the API's VALIDATION_ERROR
// envelope through ToAPIError.
package validation
