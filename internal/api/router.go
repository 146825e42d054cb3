// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/middleware"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// RequestTimeout cancels request contexts after this long. Zero disables it.
	RequestTimeout time.Duration

	// Middleware provides CORS and rate limiting. Nil uses the defaults.
	Middleware *ChiMiddleware
}

// NewRouter wires every endpoint onto a chi router.
func NewRouter(h *Handler, cfg RouterConfig, logger zerolog.Logger) http.Handler {
	mw := cfg.Middleware
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID(logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/status", h.GetStatus)

		r.Get("/items", h.ListItems)
		r.Get("/items/{itemID}", h.GetItem)
		r.Get("/items/{itemID}/similar", h.GetSimilarItems)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{userID}/ratings", h.GetUserRatings)
		r.Get("/users/{userID}/recommendations", h.GetRecommendations)

		r.Post("/ratings", h.PostRating)

		r.With(mw.RateLimitAdmin()).Post("/admin/rebuild", h.TriggerRebuild)
		r.With(mw.RateLimitAdmin()).Get("/admin/backup", h.GetBackup)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
