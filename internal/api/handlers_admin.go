// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
)

// GetStatus handles GET /api/v1/status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Status())
}

// TriggerRebuild handles POST /api/v1/admin/rebuild.
// The rebuild runs synchronously; a concurrent rebuild yields 409.
func (h *Handler) TriggerRebuild(w http.ResponseWriter, r *http.Request) {
	if !allowedMethod(w, r, http.MethodPost) {
		return
	}
	rw := NewResponseWriter(w, r)

	start := time.Now()
	if err := h.engine.Rebuild(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("manual rebuild failed")
		writeEngineError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().Dur("duration", time.Since(start)).Msg("manual rebuild complete")
	rw.Success(h.engine.Status())
}

// BackupWriter is implemented by rating stores that can stream a backup.
type BackupWriter interface {
	Backup(ctx context.Context, w io.Writer) (uint64, error)
}

// GetBackup handles GET /api/v1/admin/backup. It streams a Badger backup of
// the rating store; the covered version is sent in the X-Backup-Version trailer.
func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	backup, ok := h.store.(BackupWriter)
	if !ok {
		NewResponseWriter(w, r).ServiceUnavailable("rating store persistence is not configured")
		return
	}

	filename := fmt.Sprintf("cinematch-ratings-%s.bak", time.Now().UTC().Format("20060102T150405Z"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Trailer", "X-Backup-Version")
	w.WriteHeader(http.StatusOK)

	version, err := backup.Backup(r.Context(), w)
	if err != nil {
		// Headers are already sent; the missing trailer marks the failure.
		logging.Ctx(r.Context()).Error().Err(err).Msg("backup failed")
		return
	}
	w.Header().Set("X-Backup-Version", strconv.FormatUint(version, 10))
	logging.Ctx(r.Context()).Info().Uint64("version", version).Msg("backup streamed")
}
