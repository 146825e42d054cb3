// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// RecommendQuery holds the query parameters of the recommendations endpoint.
type RecommendQuery struct {
	K             int      `json:"k" validate:"gte=0"`
	Mode          string   `json:"mode" validate:"recmode"`
	ContentWeight *float64 `json:"content_weight" validate:"omitempty,finite,gte=0,lte=1"`
	Diversity     *float64 `json:"diversity" validate:"omitempty,finite,gte=0,lte=1"`
}

// SimilarQuery holds the query parameters of the similar-items endpoint.
type SimilarQuery struct {
	K    int    `json:"k" validate:"gte=0"`
	Mode string `json:"mode" validate:"recmode"`
}

// RatingRequest is the body of POST /api/v1/ratings.
type RatingRequest struct {
	UserID int      `json:"user_id" validate:"gt=0"`
	ItemID int      `json:"item_id" validate:"gt=0"`
	Rating *float64 `json:"rating" validate:"required,finite"`
}

// parseRecommendQuery reads k, mode, content_weight and diversity.
func parseRecommendQuery(q url.Values) (RecommendQuery, error) {
	var out RecommendQuery
	var err error

	if out.K, err = queryInt(q, "k"); err != nil {
		return out, err
	}
	out.Mode = q.Get("mode")

	if out.ContentWeight, err = queryFloat(q, "content_weight"); err != nil {
		return out, err
	}
	if out.Diversity, err = queryFloat(q, "diversity"); err != nil {
		return out, err
	}
	return out, nil
}

// parseSimilarQuery reads k and mode.
func parseSimilarQuery(q url.Values) (SimilarQuery, error) {
	k, err := queryInt(q, "k")
	if err != nil {
		return SimilarQuery{}, err
	}
	return SimilarQuery{K: k, Mode: q.Get("mode")}, nil
}

func queryInt(q url.Values, name string) (int, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	return v, nil
}

// queryFloat returns nil when the parameter is absent.
func queryFloat(q url.Values, name string) (*float64, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number, got %q", name, s)
	}
	return &v, nil
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int, error) {
	s := chi.URLParam(r, name)
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}

// decodeRatingRequest decodes a single JSON object, rejecting unknown fields
// and trailing data.
func decodeRatingRequest(w http.ResponseWriter, r *http.Request) (RatingRequest, error) {
	var req RatingRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, errors.New("invalid JSON body: unexpected trailing data")
	}
	return req, nil
}

// toRecommendRequest converts validated query parameters for the engine.
func (q RecommendQuery) toRecommendRequest(userID int, requestID string) (recommend.Request, error) {
	mode, err := recommend.ParseMode(q.Mode)
	if err != nil {
		return recommend.Request{}, err
	}
	return recommend.Request{
		UserID:        userID,
		K:             q.K,
		Mode:          mode,
		ContentWeight: q.ContentWeight,
		RequestID:     requestID,
	}, nil
}
