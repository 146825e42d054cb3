// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus instrumentation for the recommendation service.

All collectors are registered on the default registry through promauto and are
exposed by the API router at /metrics.

# Metric Families

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendations:
  - recommend_requests_total{mode, outcome}
  - recommend_duration_seconds{mode}
  - recommend_result_size{mode}
  - recommend_cache_hits_total, recommend_cache_misses_total
  - recommend_ratings_total{outcome}

Model:
  - recommend_rebuilds_total{outcome}
  - recommend_rebuild_duration_seconds
  - recommend_snapshot_version, recommend_snapshot_items, recommend_snapshot_users

Rating store:
  - store_operation_duration_seconds{operation}
  - store_operation_errors_total{operation}

Circuit breakers:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

# Usage

	start := time.Now()
	items, err := engine.RecommendHybrid(userID, k, weight)
	metrics.RecordRecommendation("hybrid", time.Since(start), len(items), err)

Record functions never block and are safe for concurrent use.
*/
package metrics
