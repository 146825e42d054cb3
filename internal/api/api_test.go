// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// memStore records saved ratings and can be told to fail.
type memStore struct {
	mu      sync.Mutex
	saved   []recommend.Rating
	failure error
}

func (s *memStore) Save(_ context.Context, r recommend.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	s.saved = append(s.saved, r)
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type testServer struct {
	handler http.Handler
	engine  *recommend.Engine
	store   *memStore
}

func newTestServer(t *testing.T, mwConfig *ChiMiddlewareConfig) *testServer {
	t.Helper()

	ds := dataset.Demo()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), ds.Items, ds.Users(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if mwConfig == nil {
		mwConfig = DefaultChiMiddlewareConfig()
		mwConfig.RateLimitDisabled = true
	}

	store := &memStore{}
	h := NewHandler(engine, store, zerolog.Nop())
	router := NewRouter(h, RouterConfig{
		RequestTimeout: 5 * time.Second,
		Middleware:     NewChiMiddleware(mwConfig),
	}, zerolog.Nop())

	return &testServer{handler: router, engine: engine, store: store}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func scoredIDs(items []recommend.ScoredItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Item.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/health/live", "")
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(t, http.MethodGet, "/api/v1/health/ready", "")
	expectStatus(t, rec, http.StatusOK)

	var health healthResponse
	decodeData(t, decodeEnvelope(t, rec), &health)
	if health.Status != "ready" || health.SnapshotVersion != 1 || health.Items != 6 {
		t.Errorf("ready = %+v", health)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestItems(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	t.Run("list", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/items", "")
		expectStatus(t, rec, http.StatusOK)
		env := decodeEnvelope(t, rec)
		var items []recommend.Item
		decodeData(t, env, &items)
		if len(items) != 6 || env.Meta.Count == nil || *env.Meta.Count != 6 {
			t.Errorf("items = %d, meta = %+v", len(items), env.Meta)
		}
	})

	tests := []struct {
		name     string
		path     string
		status   int
		wantCode string
	}{
		{"found", "/api/v1/items/4", http.StatusOK, ""},
		{"missing", "/api/v1/items/99", http.StatusNotFound, ErrCodeNotFound},
		{"non-numeric", "/api/v1/items/abc", http.StatusBadRequest, ErrCodeBadRequest},
		{"zero", "/api/v1/items/0", http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, "")
			expectStatus(t, rec, tt.status)
			env := decodeEnvelope(t, rec)
			if tt.wantCode == "" {
				var item recommend.Item
				decodeData(t, env, &item)
				if item.Title != "Galactic Battles" {
					t.Errorf("title = %q", item.Title)
				}
				return
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestGetRecommendations(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	tests := []struct {
		name  string
		query string
		want  []int
		mode  string
	}{
		{"content", "?mode=content&k=3", []int{6, 5, 2}, "content"},
		{"collaborative", "?mode=collaborative&k=3", []int{2, 3, 5}, "collaborative"},
		{"collab alias", "?mode=collab&k=3", []int{2, 3, 5}, "collaborative"},
		{"hybrid weighted", "?k=5&content_weight=0.6", []int{2, 6, 5, 3}, "hybrid"},
		{"hybrid content only", "?k=4&content_weight=1", []int{6, 5, 2, 3}, "hybrid"},
		{"zero diversity keeps ranking", "?mode=content&k=2&diversity=0", []int{6, 5}, "content"},
		{"full diversity", "?mode=content&k=2&diversity=1", []int{6, 2}, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/v1/users/101/recommendations"+tt.query, "")
			expectStatus(t, rec, http.StatusOK)

			var resp recommend.Response
			decodeData(t, decodeEnvelope(t, rec), &resp)
			if got := scoredIDs(resp.Items); !equalInts(got, tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			if resp.Metadata.Mode != tt.mode {
				t.Errorf("mode = %q, want %q", resp.Metadata.Mode, tt.mode)
			}
			if resp.Metadata.UserID != 101 {
				t.Errorf("user_id = %d, want 101", resp.Metadata.UserID)
			}
		})
	}
}

func TestGetRecommendations_DiversityMetadata(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/users/101/recommendations?mode=content&k=2&diversity=0.5", "")
	expectStatus(t, rec, http.StatusOK)

	var resp recommend.Response
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("items = %v, want 2", scoredIDs(resp.Items))
	}
	if resp.Items[0].Item.ID != 6 {
		t.Errorf("first item = %d, want the most relevant item 6", resp.Items[0].Item.ID)
	}
	if resp.Metadata.K != 2 || resp.Metadata.Diversity != 0.5 {
		t.Errorf("metadata k = %d diversity = %v, want 2 and 0.5", resp.Metadata.K, resp.Metadata.Diversity)
	}
}

func TestGetRecommendations_UnknownUser(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/users/999/recommendations", "")
	expectStatus(t, rec, http.StatusOK)

	var resp recommend.Response
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if len(resp.Items) != 0 {
		t.Errorf("items = %v, want empty", scoredIDs(resp.Items))
	}
}

func TestGetRecommendations_RequestIDPropagates(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/101/recommendations?k=2", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	env := decodeEnvelope(t, rec)
	var resp recommend.Response
	decodeData(t, env, &resp)
	if resp.Metadata.RequestID != "trace-42" || env.Meta.RequestID != "trace-42" {
		t.Errorf("request ids = %q / %q, want trace-42", resp.Metadata.RequestID, env.Meta.RequestID)
	}
	if rec.Header().Get("X-Request-ID") != "trace-42" {
		t.Errorf("X-Request-ID header = %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestGetRecommendations_BadInput(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"bad user id", "/api/v1/users/x/recommendations", ErrCodeBadRequest},
		{"negative user id", "/api/v1/users/-3/recommendations", ErrCodeBadRequest},
		{"non-numeric k", "/api/v1/users/101/recommendations?k=many", ErrCodeBadRequest},
		{"negative k", "/api/v1/users/101/recommendations?k=-1", ErrCodeValidationFailed},
		{"unknown mode", "/api/v1/users/101/recommendations?mode=popular", ErrCodeValidationFailed},
		{"weight above one", "/api/v1/users/101/recommendations?content_weight=1.5", ErrCodeValidationFailed},
		{"weight NaN", "/api/v1/users/101/recommendations?content_weight=NaN", ErrCodeValidationFailed},
		{"weight not a number", "/api/v1/users/101/recommendations?content_weight=half", ErrCodeBadRequest},
		{"diversity above one", "/api/v1/users/101/recommendations?diversity=2", ErrCodeValidationFailed},
		{"diversity not a number", "/api/v1/users/101/recommendations?diversity=lots", ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, "")
			expectStatus(t, rec, http.StatusBadRequest)
			env := decodeEnvelope(t, rec)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if env.Error != nil && env.Error.RequestID == "" {
				t.Error("error missing request_id")
			}
		})
	}
}

func TestGetSimilarItems(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/items/1/similar?mode=content&k=2", "")
	expectStatus(t, rec, http.StatusOK)

	var resp similarResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if resp.ItemID != 1 || resp.Mode != "content" {
		t.Errorf("response = %+v", resp)
	}
	if got := scoredIDs(resp.Items); !equalInts(got, []int{6, 4}) {
		t.Errorf("items = %v, want [6 4]", got)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/items/99/similar", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestPostRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		status    int
		wantCode  string
		wantSaved int
	}{
		{"valid", `{"user_id":101,"item_id":2,"rating":4.5}`, http.StatusCreated, "", 1},
		{"new user", `{"user_id":500,"item_id":3,"rating":2}`, http.StatusCreated, "", 1},
		{"unknown item", `{"user_id":101,"item_id":99,"rating":3}`, http.StatusNotFound, ErrCodeNotFound, 0},
		{"out of range", `{"user_id":101,"item_id":2,"rating":7}`, http.StatusBadRequest, ErrCodeBadRequest, 0},
		{"missing rating", `{"user_id":101,"item_id":2}`, http.StatusBadRequest, ErrCodeValidationFailed, 0},
		{"zero user", `{"user_id":0,"item_id":2,"rating":3}`, http.StatusBadRequest, ErrCodeValidationFailed, 0},
		{"unknown field", `{"user_id":101,"item_id":2,"rating":3,"extra":1}`, http.StatusBadRequest, ErrCodeBadRequest, 0},
		{"trailing data", `{"user_id":101,"item_id":2,"rating":3} {}`, http.StatusBadRequest, ErrCodeBadRequest, 0},
		{"malformed", `{"user_id":`, http.StatusBadRequest, ErrCodeBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t, nil)

			rec := s.do(t, http.MethodPost, "/api/v1/ratings", tt.body)
			expectStatus(t, rec, tt.status)

			env := decodeEnvelope(t, rec)
			if tt.wantCode != "" && (env.Error == nil || env.Error.Code != tt.wantCode) {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if got := s.store.count(); got != tt.wantSaved {
				t.Errorf("saved = %d, want %d", got, tt.wantSaved)
			}
		})
	}
}

func TestPostRating_UpdatesEngine(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/ratings", `{"user_id":101,"item_id":6,"rating":1}`)
	expectStatus(t, rec, http.StatusCreated)

	ratings, ok := s.engine.UserRatings(101)
	if !ok || ratings[6] != 1 {
		t.Errorf("engine ratings = %v", ratings)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/users/101/ratings", "")
	expectStatus(t, rec, http.StatusOK)
	var out userRatingsResponse
	decodeData(t, decodeEnvelope(t, rec), &out)
	if len(out.Ratings) != 3 {
		t.Errorf("ratings = %+v, want 3", out.Ratings)
	}
	for i := 1; i < len(out.Ratings); i++ {
		if out.Ratings[i-1].ItemID > out.Ratings[i].ItemID {
			t.Errorf("ratings not ordered by item id: %+v", out.Ratings)
		}
	}
}

func TestPostRating_StoreFailure(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.store.failure = errors.New("disk full")

	rec := s.do(t, http.MethodPost, "/api/v1/ratings", `{"user_id":101,"item_id":6,"rating":1}`)
	expectStatus(t, rec, http.StatusInternalServerError)

	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != ErrCodeStorageError {
		t.Errorf("error = %+v, want STORAGE_ERROR", env.Error)
	}
	if ratings, _ := s.engine.UserRatings(101); len(ratings) != 2 {
		t.Errorf("engine saw an unpersisted rating: %v", ratings)
	}
}

func TestPostRating_StoreBreakerOpen(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.store.failure = gobreaker.ErrOpenState

	rec := s.do(t, http.MethodPost, "/api/v1/ratings", `{"user_id":101,"item_id":6,"rating":1}`)
	expectStatus(t, rec, http.StatusServiceUnavailable)

	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("error = %+v, want SERVICE_UNAVAILABLE", env.Error)
	}
}

func TestPostRating_NilStore(t *testing.T) {
	t.Parallel()

	ds := dataset.Demo()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), ds.Items, ds.Users(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	h := NewHandler(engine, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ratings", strings.NewReader(`{"user_id":7,"item_id":1,"rating":5}`))
	rec := httptest.NewRecorder()
	h.PostRating(rec, req)
	expectStatus(t, rec, http.StatusCreated)
}

func TestUsers(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/users", "")
	expectStatus(t, rec, http.StatusOK)
	var users []int
	decodeData(t, decodeEnvelope(t, rec), &users)
	if !equalInts(users, []int{101, 102, 103}) {
		t.Errorf("users = %v", users)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/users/999/ratings", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestRebuildAndStatus(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/rebuild", "")
	expectStatus(t, rec, http.StatusOK)

	var st recommend.Status
	decodeData(t, decodeEnvelope(t, rec), &st)
	if st.SnapshotVersion != 2 {
		t.Errorf("snapshot_version = %d, want 2", st.SnapshotVersion)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/status", "")
	expectStatus(t, rec, http.StatusOK)
	decodeData(t, decodeEnvelope(t, rec), &st)
	if st.Items != 6 || st.Users != 3 || st.Ratings != 6 {
		t.Errorf("status = %+v", st)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/admin/rebuild", "")
	expectStatus(t, rec, http.StatusMethodNotAllowed)
}

func TestTriggerRebuild_DirectWrongMethod(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	h := NewHandler(s.engine, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.TriggerRebuild(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rebuild", nil))
	expectStatus(t, rec, http.StatusMethodNotAllowed)
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("Allow = %q", rec.Header().Get("Allow"))
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/nope", "")
	expectStatus(t, rec, http.StatusNotFound)
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	s.do(t, http.MethodGet, "/api/v1/items", "")
	rec := s.do(t, http.MethodGet, "/metrics", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		expectStatus(t, s.do(t, http.MethodGet, "/api/v1/items", ""), http.StatusOK)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/items", "")
	expectStatus(t, rec, http.StatusTooManyRequests)
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	// Health endpoints have their own budget.
	expectStatus(t, s.do(t, http.MethodGet, "/api/v1/health/live", ""), http.StatusOK)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example"}
	cfg.RateLimitDisabled = true
	s := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ratings", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestParseRecommendQuery(t *testing.T) {
	t.Parallel()

	q, err := parseRecommendQuery(map[string][]string{
		"k":              {"7"},
		"mode":           {"content"},
		"content_weight": {"0.25"},
	})
	if err != nil {
		t.Fatalf("parseRecommendQuery() error = %v", err)
	}
	if q.K != 7 || q.Mode != "content" || q.ContentWeight == nil || *q.ContentWeight != 0.25 {
		t.Errorf("query = %+v", q)
	}

	q, err = parseRecommendQuery(map[string][]string{"diversity": {"0.3"}})
	if err != nil || q.Diversity == nil || *q.Diversity != 0.3 {
		t.Errorf("diversity query = %+v, %v", q, err)
	}

	q, err = parseRecommendQuery(nil)
	if err != nil || q.K != 0 || q.Mode != "" || q.ContentWeight != nil || q.Diversity != nil {
		t.Errorf("empty query = %+v, %v", q, err)
	}
}
