// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides the HTTP middleware shared by every API route.

  - RequestID: accepts or generates X-Request-ID and attaches a request-scoped
    zerolog logger to the context
  - AccessLog: one structured log line per request
  - PrometheusMetrics: request count, latency and in-flight gauges, labelled
    by chi route pattern so path parameters do not explode label cardinality

All three are chi-compatible func(http.Handler) http.Handler values:

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
