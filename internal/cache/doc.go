// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package cache provides a thread-safe, generic LRU cache with TTL expiration.

The recommendation engine uses it to memoize responses keyed by user, mode and
list size. Entries for one user are dropped with RemovePrefix when that user
rates an item, and the whole cache is cleared when the model is rebuilt.

# Usage Example

	c := cache.NewLRUCache[*recommend.Response](1000, 5*time.Minute)
	c.Add("rec:101:hybrid:5:0.60", resp)
	if cached, ok := c.Get("rec:101:hybrid:5:0.60"); ok {
	    return cached
	}
	c.RemovePrefix("rec:101:")

# Thread Safety

All methods take a single mutex. Get mutates recency order, so there is no
read-only fast path.
*/
package cache
