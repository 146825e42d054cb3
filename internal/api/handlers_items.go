// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import "net/http"

// ListItems handles GET /api/v1/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := h.engine.Items()
	NewResponseWriter(w, r).SuccessList(items, len(items))
}

// GetItem handles GET /api/v1/items/{itemID}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	itemID, err := pathID(r, "itemID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	item, ok := h.engine.Item(itemID)
	if !ok {
		rw.NotFound("item not found")
		return
	}
	rw.Success(item)
}
