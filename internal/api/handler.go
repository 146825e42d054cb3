// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// RatingStore persists accepted ratings. A nil store disables persistence.
type RatingStore interface {
	Save(ctx context.Context, r recommend.Rating) error
}

// Handler serves the API endpoints.
type Handler struct {
	engine *recommend.Engine
	store  RatingStore
	logger zerolog.Logger
}

// NewHandler creates a handler. store may be nil.
func NewHandler(engine *recommend.Engine, store RatingStore, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// writeEngineError maps engine errors to HTTP responses.
func writeEngineError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidK),
		errors.Is(err, recommend.ErrInvalidWeight),
		errors.Is(err, recommend.ErrInvalidMode),
		errors.Is(err, recommend.ErrInvalidRating),
		errors.Is(err, recommend.ErrInvalidUser):
		rw.BadRequest(err.Error())
	case errors.Is(err, recommend.ErrUnknownItem):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrRebuildInProgress):
		rw.Conflict(err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("Request timed out")
	default:
		rw.InternalError("Internal server error")
	}
}

// allowedMethod rejects requests whose method differs from want.
// Chi routes by method already; this guards handlers mounted directly.
func allowedMethod(w http.ResponseWriter, r *http.Request, want string) bool {
	if r.Method == want {
		return true
	}
	w.Header().Set("Allow", want)
	NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	return false
}
