// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"
)

// healthResponse is the payload of the health endpoints.
type healthResponse struct {
	Status          string    `json:"status"`
	SnapshotVersion int       `json:"snapshot_version,omitempty"`
	BuiltAt         time.Time `json:"built_at,omitempty"`
	Items           int       `json:"items,omitempty"`
}

// HealthLive handles GET /api/v1/health/live. It reports only that the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(healthResponse{Status: "ok"})
}

// HealthReady handles GET /api/v1/health/ready.
// The engine is ready once it has a snapshot and a non-empty catalog.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	st := h.engine.Status()
	if st.SnapshotVersion == 0 || st.Items == 0 {
		rw.ServiceUnavailable("recommendation engine not ready")
		return
	}

	rw.Success(healthResponse{
		Status:          "ready",
		SnapshotVersion: st.SnapshotVersion,
		BuiltAt:         st.BuiltAt,
		Items:           st.Items,
	})
}
