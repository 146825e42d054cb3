// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/store"
	"github.com/tomtom215/cinematch/internal/validation"
)

// PostRating handles POST /api/v1/ratings.
//
// The rating is checked against the catalog and rating scale, persisted when a
// store is configured, then applied to the engine. Content recommendations see
// it at once; collaborative ones after the next rebuild.
func (h *Handler) PostRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	body, err := decodeRatingRequest(w, r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		rw.ValidationError(verr)
		return
	}

	rating := recommend.Rating{UserID: body.UserID, ItemID: body.ItemID, Value: *body.Rating}
	if err := h.engine.CheckRating(rating); err != nil {
		writeEngineError(rw, err)
		return
	}

	if h.store != nil {
		if err := h.store.Save(r.Context(), rating); err != nil {
			if store.IsUnavailable(err) {
				rw.ServiceUnavailable("rating store is temporarily unavailable")
				return
			}
			rw.StorageError(err)
			return
		}
	}

	if err := h.engine.Rate(rating.UserID, rating.ItemID, rating.Value); err != nil {
		writeEngineError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("user_id", rating.UserID).
		Int("item_id", rating.ItemID).
		Float64("rating", rating.Value).
		Msg("rating recorded")

	rw.Created(rating)
}

// userRatingsResponse is the payload of the user ratings endpoint.
type userRatingsResponse struct {
	UserID  int                `json:"user_id"`
	Ratings []recommend.Rating `json:"ratings"`
}

// GetUserRatings handles GET /api/v1/users/{userID}/ratings.
func (h *Handler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	ratings, ok := h.engine.UserRatings(userID)
	if !ok {
		rw.NotFound("user not found")
		return
	}

	out := userRatingsResponse{UserID: userID, Ratings: make([]recommend.Rating, 0, len(ratings))}
	for _, item := range h.engine.Items() {
		if v, rated := ratings[item.ID]; rated {
			out.Ratings = append(out.Ratings, recommend.Rating{UserID: userID, ItemID: item.ID, Value: v})
		}
	}
	rw.Success(out)
}

// ListUsers handles GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.engine.Users()
	NewResponseWriter(w, r).SuccessList(users, len(users))
}
