// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// Engine serves content, collaborative and hybrid recommendations over an
// immutable catalog and a mutable set of users. It is safe for concurrent use.
//
// Derived data (content vectors, item similarity matrix) lives in an immutable
// snapshot that is replaced atomically by Rebuild. Ratings added with Rate are
// visible to the content recommender immediately and to the collaborative
// recommender after the next rebuild.
type Engine struct {
	config *Config
	logger zerolog.Logger

	items   map[int]Item
	itemIDs []int

	usersMu sync.RWMutex
	users   map[int]*User

	snap       atomic.Pointer[snapshot]
	rebuildMu  sync.Mutex
	rebuilding atomic.Bool

	cache *cache.LRUCache[*Response]
}

// snapshot holds derived data built from one catalog and rating state.
type snapshot struct {
	version       int
	builtAt       time.Time
	buildDuration time.Duration
	ratings       int

	vectors map[int]algorithms.TermVector
	sims    algorithms.SimilarityMatrix
	content *algorithms.ContentRecommender
	collab  *algorithms.ItemCF
}

// NewEngine creates an engine and builds its first snapshot.
// Items must have unique ids. Users are copied; later changes to them are not seen.
// Ratings outside the configured scale are dropped with a warning. Ratings of
// items outside the catalog are kept but never contribute to scores.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, items []Item, users []*User, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		items:   make(map[int]Item, len(items)),
		itemIDs: make([]int, 0, len(items)),
		users:   make(map[int]*User, len(users)),
	}

	for _, item := range items {
		if _, dup := e.items[item.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, item.ID)
		}
		e.items[item.ID] = item
		e.itemIDs = append(e.itemIDs, item.ID)
	}
	slices.Sort(e.itemIDs)

	for _, u := range users {
		if u == nil {
			continue
		}
		if _, dup := e.users[u.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateUser, u.ID)
		}
		e.users[u.ID] = &User{ID: u.ID, ratings: e.inScale(u)}
	}

	if cfg.Cache.Enabled {
		e.cache = cache.NewLRUCache[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	snap, err := e.buildSnapshot(context.Background(), 1)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	e.snap.Store(snap)
	metrics.RecordRebuild(snap.buildDuration, snap.version, len(e.items), len(e.users), nil)

	e.logger.Info().
		Int("items", len(e.items)).
		Int("users", len(e.users)).
		Int("ratings", snap.ratings).
		Dur("duration", snap.buildDuration).
		Msg("recommendation engine ready")

	return e, nil
}

// inScale returns a copy of u's ratings without values outside
// [MinRating, MaxRating].
func (e *Engine) inScale(u *User) map[int]float64 {
	ratings := u.Ratings()
	lo, hi := e.config.Scoring.MinRating, e.config.Scoring.MaxRating
	for itemID, v := range ratings {
		if v >= lo && v <= hi {
			continue
		}
		delete(ratings, itemID)
		e.logger.Warn().
			Int("user_id", u.ID).
			Int("item_id", itemID).
			Float64("rating", v).
			Msg("dropping rating outside the rating scale")
	}
	return ratings
}

// ratesCatalog reports whether any of ratings is for a catalog item.
func (e *Engine) ratesCatalog(ratings map[int]float64) bool {
	for itemID := range ratings {
		if _, ok := e.items[itemID]; ok {
			return true
		}
	}
	return false
}

// buildSnapshot builds content vectors and the item similarity matrix in parallel
// from a copy of the current ratings.
func (e *Engine) buildSnapshot(ctx context.Context, version int) (*snapshot, error) {
	start := time.Now()
	ratings, count := e.copyRatings()

	docs := make([]algorithms.Document, 0, len(e.itemIDs))
	for _, id := range e.itemIDs {
		docs = append(docs, e.items[id].document())
	}

	var (
		vectors map[int]algorithms.TermVector
		sims    algorithms.SimilarityMatrix
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vectors = algorithms.BuildContentVectors(docs)
		return nil
	})
	g.Go(func() error {
		var err error
		sims, err = algorithms.BuildItemSimilarity(gctx, e.itemIDs, ratings)
		if err != nil {
			return fmt.Errorf("item similarity: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snapshot{
		version:       version,
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
		ratings:       count,
		vectors:       vectors,
		sims:          sims,
		content:       algorithms.NewContentRecommender(vectors, e.config.Scoring.Pivot),
		collab:        algorithms.NewItemCF(sims),
	}, nil
}

// copyRatings returns a copy of every user's ratings and the total count.
func (e *Engine) copyRatings() (algorithms.UserRatings, int) {
	e.usersMu.RLock()
	defer e.usersMu.RUnlock()

	out := make(algorithms.UserRatings, len(e.users))
	count := 0
	for id, u := range e.users {
		out[id] = u.Ratings()
		count += u.Len()
	}
	return out, count
}

// userRatings returns a copy of one user's ratings and its revision.
// Unknown users yield nil.
func (e *Engine) userRatings(userID int) (map[int]float64, uint64) {
	e.usersMu.RLock()
	defer e.usersMu.RUnlock()

	u, ok := e.users[userID]
	if !ok {
		return nil, 0
	}
	return u.Ratings(), u.revision
}

// RecommendContent returns up to k unrated items ranked by similarity to the
// user's content profile. Unknown users and users without ratings of catalog
// items get an empty list.
func (e *Engine) RecommendContent(userID, k int) ([]ScoredItem, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	ratings, _ := e.userRatings(userID)
	return e.recommendContent(e.snap.Load(), ratings, k), nil
}

// RecommendCollaborative returns up to k unrated items ranked by item-item
// collaborative filtering. Unknown users and users without ratings get an empty list.
func (e *Engine) RecommendCollaborative(userID, k int) ([]ScoredItem, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	ratings, _ := e.userRatings(userID)
	return e.recommendCollaborative(e.snap.Load(), ratings, k), nil
}

// RecommendHybrid fuses the content and collaborative rankings by rank position.
// contentWeight is the content share in [0, 1]; the collaborative list gets the rest.
func (e *Engine) RecommendHybrid(userID, k int, contentWeight float64) ([]ScoredItem, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if !validWeight(contentWeight) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeight, contentWeight)
	}
	ratings, _ := e.userRatings(userID)
	return e.recommendHybrid(e.snap.Load(), ratings, k, contentWeight), nil
}

func (e *Engine) recommendContent(snap *snapshot, ratings map[int]float64, k int) []ScoredItem {
	if k == 0 || !e.ratesCatalog(ratings) {
		return []ScoredItem{}
	}
	return e.toScoredItems(snap.content.Recommend(ratings, k), SourceContent)
}

func (e *Engine) recommendCollaborative(snap *snapshot, ratings map[int]float64, k int) []ScoredItem {
	if k == 0 || !e.ratesCatalog(ratings) {
		return []ScoredItem{}
	}
	return e.toScoredItems(snap.collab.Recommend(ratings, k), SourceCollaborative)
}

func (e *Engine) recommendHybrid(snap *snapshot, ratings map[int]float64, k int, contentWeight float64) []ScoredItem {
	if k == 0 || !e.ratesCatalog(ratings) {
		return []ScoredItem{}
	}

	pool := algorithms.PoolSize(k, e.config.Hybrid.MinPool, e.config.Hybrid.PoolMultiplier)
	fused := algorithms.Fuse(
		snap.content.Recommend(ratings, pool),
		snap.collab.Recommend(ratings, pool),
		contentWeight,
		k,
	)
	return e.toScoredItems(fused, SourceHybrid)
}

func (e *Engine) toScoredItems(scored []algorithms.Scored, source string) []ScoredItem {
	out := make([]ScoredItem, 0, len(scored))
	for _, s := range scored {
		out = append(out, ScoredItem{
			Item:   e.items[s.ID],
			Score:  s.Score,
			Source: source,
		})
	}
	return out
}

// Recommend serves a Request: it applies limits and defaults, dispatches on
// Mode, consults the response cache and records metrics.
// Unlike the direct methods, K == 0 selects Config.Limits.DefaultK.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	req, weight, err := e.prepareRequest(req)
	if err != nil {
		metrics.RecordRecommendation(req.Mode.String(), time.Since(start), 0, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("mode", req.Mode.String()).
		Int("k", req.K).
		Logger()

	snap := e.snap.Load()
	ratings, revision := e.userRatings(req.UserID)
	key := cacheKey(req, weight, snap.version, revision)

	if resp := e.cachedResponse(key, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		metrics.RecordRecommendation(req.Mode.String(), time.Since(start), len(resp.Items), nil)
		return resp, nil
	}

	var items []ScoredItem
	switch req.Mode {
	case ModeContent:
		items = e.recommendContent(snap, ratings, req.K)
	case ModeCollaborative:
		items = e.recommendCollaborative(snap, ratings, req.K)
	case ModeHybrid:
		items = e.recommendHybrid(snap, ratings, req.K, weight)
	default:
		err := fmt.Errorf("%w: %d", ErrInvalidMode, int(req.Mode))
		metrics.RecordRecommendation(req.Mode.String(), time.Since(start), 0, err)
		return nil, err
	}

	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			UserID:          req.UserID,
			Mode:            req.Mode.String(),
			K:               req.K,
			LatencyMS:       time.Since(start).Milliseconds(),
			SnapshotVersion: snap.version,
			BuiltAt:         snap.builtAt,
			Timestamp:       time.Now(),
		},
	}
	if req.Mode == ModeHybrid {
		resp.Metadata.ContentWeight = weight
	}

	if e.cache != nil {
		e.cache.Add(key, resp)
	}

	metrics.RecordRecommendation(req.Mode.String(), time.Since(start), len(items), nil)
	logger.Debug().
		Int("returned", len(items)).
		Int("ratings", len(ratings)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return copyResponse(resp), nil
}

// prepareRequest applies defaults and limits and resolves the hybrid weight.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, float64, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	k, err := e.ResolveK(req.K)
	if err != nil {
		return req, 0, err
	}
	req.K = k

	weight := e.config.Hybrid.ContentWeight
	if req.ContentWeight != nil {
		weight = *req.ContentWeight
		if !validWeight(weight) {
			return req, 0, fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
		}
	}

	return req, weight, nil
}

// cacheKey embeds the snapshot version and the user's rating revision so that
// entries computed from stale state are never served.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(req Request, weight float64, version int, revision uint64) string {
	return fmt.Sprintf("%s%d:%d:%s:%d:%.6f", userCachePrefix(req.UserID), version, revision, req.Mode, req.K, weight)
}

func userCachePrefix(userID int) string {
	return fmt.Sprintf("rec:%d:", userID)
}

// cachedResponse returns a copy of the cached response for key with fresh
// request metadata, or nil on a miss.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cachedResponse(key string, req Request, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		return nil
	}

	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return resp
}

// copyResponse copies the item slice so callers cannot mutate cached entries.
func copyResponse(resp *Response) *Response {
	out := *resp
	out.Items = slices.Clone(resp.Items)
	return &out
}

// CheckRating validates a rating without applying it.
func (e *Engine) CheckRating(r Rating) error {
	if r.UserID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUser, r.UserID)
	}
	if _, ok := e.items[r.ItemID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, r.ItemID)
	}
	if math.IsNaN(r.Value) || r.Value < e.config.Scoring.MinRating || r.Value > e.config.Scoring.MaxRating {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrInvalidRating, r.Value, e.config.Scoring.MinRating, e.config.Scoring.MaxRating)
	}
	return nil
}

// Rate records a rating, creating the user if needed and replacing any
// earlier rating of the same item. The collaborative model picks it up at the
// next Rebuild.
func (e *Engine) Rate(userID, itemID int, value float64) error {
	r := Rating{UserID: userID, ItemID: itemID, Value: value}
	if err := e.CheckRating(r); err != nil {
		metrics.RecordRating(err)
		e.logger.Warn().
			Err(err).
			Int("user_id", userID).
			Int("item_id", itemID).
			Float64("rating", value).
			Msg("rating rejected")
		return err
	}

	e.usersMu.Lock()
	u, ok := e.users[userID]
	if !ok {
		u = NewUser(userID)
		e.users[userID] = u
	}
	u.Rate(itemID, value)
	e.usersMu.Unlock()

	if e.cache != nil {
		e.cache.RemovePrefix(userCachePrefix(userID))
	}

	metrics.RecordRating(nil)
	e.logger.Debug().
		Int("user_id", userID).
		Int("item_id", itemID).
		Float64("rating", value).
		Bool("new_user", !ok).
		Msg("rating recorded")

	return nil
}

// Rebuild recomputes content vectors and the item similarity matrix from the
// current ratings and swaps them in atomically. Recommendations keep being
// served from the previous snapshot while the rebuild runs. A concurrent call
// returns ErrRebuildInProgress.
func (e *Engine) Rebuild(ctx context.Context) error {
	if !e.rebuildMu.TryLock() {
		metrics.RecordRebuild(0, 0, 0, 0, ErrRebuildInProgress)
		return ErrRebuildInProgress
	}
	defer e.rebuildMu.Unlock()

	e.rebuilding.Store(true)
	defer e.rebuilding.Store(false)

	ctx, cancel := context.WithTimeout(ctx, e.config.Rebuild.Timeout)
	defer cancel()

	current := e.snap.Load()
	e.logger.Info().Int("from_version", current.version).Msg("starting rebuild")

	next, err := e.buildSnapshot(ctx, current.version+1)
	if err != nil {
		metrics.RecordRebuild(0, 0, 0, 0, err)
		e.logger.Error().Err(err).Msg("rebuild failed")
		return fmt.Errorf("rebuild: %w", err)
	}

	e.snap.Store(next)
	if e.cache != nil {
		e.cache.Clear()
	}

	users := e.userCount()
	metrics.RecordRebuild(next.buildDuration, next.version, len(e.items), users, nil)
	e.logger.Info().
		Int("version", next.version).
		Int("users", users).
		Int("ratings", next.ratings).
		Dur("duration", next.buildDuration).
		Msg("rebuild complete")

	return nil
}

func (e *Engine) userCount() int {
	e.usersMu.RLock()
	defer e.usersMu.RUnlock()
	return len(e.users)
}

// Status reports the active snapshot and current data sizes.
func (e *Engine) Status() Status {
	snap := e.snap.Load()
	_, ratings := e.copyRatings()

	st := Status{
		SnapshotVersion: snap.version,
		BuiltAt:         snap.builtAt,
		BuildDuration:   snap.buildDuration,
		Items:           len(e.items),
		Users:           e.userCount(),
		Ratings:         ratings,
		SnapshotRatings: snap.ratings,
		Rebuilding:      e.rebuilding.Load(),
	}
	if e.cache != nil {
		st.CacheEntries = e.cache.Len()
	}
	return st
}

// Item returns the catalog item with the given id.
func (e *Engine) Item(id int) (Item, bool) {
	item, ok := e.items[id]
	return item, ok
}

// Items returns the catalog ordered by id.
func (e *Engine) Items() []Item {
	out := make([]Item, 0, len(e.itemIDs))
	for _, id := range e.itemIDs {
		out = append(out, e.items[id])
	}
	return out
}

// Users returns the ids of all known users in ascending order.
func (e *Engine) Users() []int {
	e.usersMu.RLock()
	ids := make([]int, 0, len(e.users))
	for id := range e.users {
		ids = append(ids, id)
	}
	e.usersMu.RUnlock()

	slices.Sort(ids)
	return ids
}

// UserRatings returns a copy of a user's ratings.
func (e *Engine) UserRatings(userID int) (map[int]float64, bool) {
	ratings, _ := e.userRatings(userID)
	return ratings, ratings != nil
}

// ContentVector returns the cached content vector of an item.
// The returned vector must not be modified.
func (e *Engine) ContentVector(itemID int) (algorithms.TermVector, bool) {
	vec, ok := e.snap.Load().vectors[itemID]
	return vec, ok
}

// Similarity returns the cached rating similarity between two items.
func (e *Engine) Similarity(a, b int) float64 {
	return e.snap.Load().sims.Similarity(a, b)
}

// ContentSimilarity returns the cosine of two items' content vectors, or 0
// when either item is unknown.
func (e *Engine) ContentSimilarity(a, b int) float64 {
	snap := e.snap.Load()
	va, okA := snap.vectors[a]
	vb, okB := snap.vectors[b]
	if !okA || !okB {
		return 0
	}
	return algorithms.TermCosine(va, vb)
}

// SimilarItems returns up to k catalog items most similar to itemID.
// ModeContent ranks by content vector cosine, ModeCollaborative by rating
// similarity, and ModeHybrid fuses both rankings with the configured content weight.
func (e *Engine) SimilarItems(itemID, k int, mode Mode) ([]ScoredItem, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if _, ok := e.items[itemID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}

	snap := e.snap.Load()
	switch mode {
	case ModeContent:
		return e.toScoredItems(algorithms.SimilarByContent(snap.vectors, itemID, k), SourceContent), nil
	case ModeCollaborative:
		return e.toScoredItems(algorithms.SimilarByRatings(snap.sims, itemID, k), SourceCollaborative), nil
	case ModeHybrid:
		if k == 0 {
			return []ScoredItem{}, nil
		}
		pool := algorithms.PoolSize(k, e.config.Hybrid.MinPool, e.config.Hybrid.PoolMultiplier)
		fused := algorithms.Fuse(
			algorithms.SimilarByContent(snap.vectors, itemID, pool),
			algorithms.SimilarByRatings(snap.sims, itemID, pool),
			e.config.Hybrid.ContentWeight,
			k,
		)
		return e.toScoredItems(fused, SourceHybrid), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}
}

// ResolveK applies the configured limits: 0 selects DefaultK and values
// above MaxK are capped. Negative k is an error.
func (e *Engine) ResolveK(k int) (int, error) {
	switch {
	case k < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidK, k)
	case k == 0:
		return e.config.Limits.DefaultK, nil
	case k > e.config.Limits.MaxK:
		return e.config.Limits.MaxK, nil
	default:
		return k, nil
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
