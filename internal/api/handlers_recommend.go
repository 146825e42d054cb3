// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/reranking"
	"github.com/tomtom215/cinematch/internal/validation"
)

// diversityPoolFactor is how many candidates per requested item the engine
// ranks before MMR picks the final list.
const diversityPoolFactor = 3

// GetRecommendations handles GET /api/v1/users/{userID}/recommendations.
//
// Query parameters:
//   - k: number of results (0 or absent selects the configured default)
//   - mode: hybrid (default), content or collaborative
//   - content_weight: hybrid content share in [0, 1]
//   - diversity: MMR diversity in [0, 1]; 0 or absent keeps the engine ranking
//
// Unknown users and users without ratings get an empty list.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	query, err := parseRecommendQuery(r.URL.Query())
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&query); verr != nil {
		rw.ValidationError(verr)
		return
	}

	req, err := query.toRecommendRequest(userID, logging.RequestIDFromContext(r.Context()))
	if err != nil {
		writeEngineError(rw, err)
		return
	}

	diversify := query.Diversity != nil && *query.Diversity > 0
	var k int
	if diversify {
		if k, err = h.engine.ResolveK(req.K); err != nil {
			writeEngineError(rw, err)
			return
		}
		req.K = k * diversityPoolFactor
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Int("user_id", userID).Msg("recommendation failed")
		writeEngineError(rw, err)
		return
	}

	if diversify {
		mmr := reranking.NewMMR(1-*query.Diversity, h.contentSimilarity)
		resp.Items = mmr.Rerank(resp.Items, k)
		resp.Metadata.K = k
		resp.Metadata.Diversity = *query.Diversity
	}

	rw.Success(resp)
}

func (h *Handler) contentSimilarity(a, b recommend.Item) float64 {
	return h.engine.ContentSimilarity(a.ID, b.ID)
}

// similarResponse is the payload of the similar-items endpoint.
type similarResponse struct {
	ItemID int                    `json:"item_id"`
	Mode   string                 `json:"mode"`
	Items  []recommend.ScoredItem `json:"items"`
}

// GetSimilarItems handles GET /api/v1/items/{itemID}/similar.
func (h *Handler) GetSimilarItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	itemID, err := pathID(r, "itemID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	query, err := parseSimilarQuery(r.URL.Query())
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&query); verr != nil {
		rw.ValidationError(verr)
		return
	}

	mode, err := recommend.ParseMode(query.Mode)
	if err != nil {
		writeEngineError(rw, err)
		return
	}
	k, err := h.engine.ResolveK(query.K)
	if err != nil {
		writeEngineError(rw, err)
		return
	}

	items, err := h.engine.SimilarItems(itemID, k, mode)
	if err != nil {
		writeEngineError(rw, err)
		return
	}

	rw.Success(similarResponse{ItemID: itemID, Mode: mode.String(), Items: items})
}
