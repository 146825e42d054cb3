// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// Item is a catalog entry. Items are immutable once created with NewItem.
type Item struct {
	// ID is the unique catalog identifier.
	ID int `json:"id"`

	// Title is the display title. It does not contribute to content vectors.
	Title string `json:"title"`

	// Description is the lower-cased free-text description.
	Description string `json:"description"`

	// Tags are lower-cased, de-duplicated and sorted.
	Tags []string `json:"tags"`
}

// NewItem creates an Item with a lower-cased description and normalized tags.
// Blank tags are dropped.
func NewItem(id int, title, description string, tags ...string) Item {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	slices.Sort(normalized)

	return Item{
		ID:          id,
		Title:       title,
		Description: strings.ToLower(description),
		Tags:        slices.Compact(normalized),
	}
}

// String renders the item as "id: title".
func (i Item) String() string {
	return fmt.Sprintf("%d: %s", i.ID, i.Title)
}

func (i Item) document() algorithms.Document {
	return algorithms.Document{ID: i.ID, Text: i.Description, Tags: i.Tags}
}

// User holds one user's ratings, at most one per item.
// A User is not safe for concurrent use; the Engine guards its users.
type User struct {
	// ID is the user identifier.
	ID int

	ratings  map[int]float64
	revision uint64
}

// NewUser creates a user with no ratings.
func NewUser(id int) *User {
	return &User{ID: id, ratings: make(map[int]float64)}
}

// Rate records value for itemID, replacing any earlier rating of that item.
func (u *User) Rate(itemID int, value float64) {
	if u.ratings == nil {
		u.ratings = make(map[int]float64)
	}
	u.ratings[itemID] = value
	u.revision++
}

// Rating returns the user's rating for itemID.
func (u *User) Rating(itemID int) (float64, bool) {
	v, ok := u.ratings[itemID]
	return v, ok
}

// Ratings returns a copy of the rating map.
func (u *User) Ratings() map[int]float64 {
	out := make(map[int]float64, len(u.ratings))
	for id, v := range u.ratings {
		out[id] = v
	}
	return out
}

// Len returns the number of rated items.
func (u *User) Len() int {
	return len(u.ratings)
}

// Rating is a single user-item rating record used for ingestion and persistence.
type Rating struct {
	UserID int     `json:"user_id" yaml:"user_id"`
	ItemID int     `json:"item_id" yaml:"item_id"`
	Value  float64 `json:"rating" yaml:"rating"`
}

// Source names the recommender that produced a ScoredItem.
const (
	SourceContent       = "content"
	SourceCollaborative = "collaborative"
	SourceHybrid        = "hybrid"
)

// ScoredItem is one entry of a ranked recommendation list.
type ScoredItem struct {
	// Item is the recommended catalog item.
	Item Item `json:"item"`

	// Score is the ranking score. Its scale depends on Source: cosine for
	// content, predicted rating for collaborative, fused rank points for hybrid.
	Score float64 `json:"score"`

	// Source is the recommender that produced the score.
	Source string `json:"source"`
}

// Mode selects the recommender used by Engine.Recommend.
type Mode int

const (
	// ModeHybrid fuses content and collaborative rankings.
	ModeHybrid Mode = iota
	// ModeContent ranks by content profile similarity.
	ModeContent
	// ModeCollaborative ranks by item-item collaborative filtering.
	ModeCollaborative
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeHybrid:
		return SourceHybrid
	case ModeContent:
		return SourceContent
	case ModeCollaborative:
		return SourceCollaborative
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. The empty string selects ModeHybrid.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", SourceHybrid:
		return ModeHybrid, nil
	case SourceContent:
		return ModeContent, nil
	case SourceCollaborative, "collab":
		return ModeCollaborative, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Request is a recommendation request handled by Engine.Recommend.
type Request struct {
	// UserID is the user to generate recommendations for.
	UserID int `json:"user_id"`

	// K is the number of recommendations to return.
	// Zero selects Config.Limits.DefaultK. Values above Config.Limits.MaxK are capped.
	K int `json:"k,omitempty"`

	// Mode selects the recommender.
	Mode Mode `json:"mode"`

	// ContentWeight overrides Config.Hybrid.ContentWeight in hybrid mode.
	ContentWeight *float64 `json:"content_weight,omitempty"`

	// RequestID is a unique identifier for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of Engine.Recommend.
type Response struct {
	// Items are ranked best first.
	Items []ScoredItem `json:"items"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about a recommendation response.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id"`
	UserID          int       `json:"user_id"`
	Mode            string    `json:"mode"`
	K               int       `json:"k"`
	ContentWeight   float64   `json:"content_weight,omitempty"`
	Diversity       float64   `json:"diversity,omitempty"`
	LatencyMS       int64     `json:"latency_ms"`
	CacheHit        bool      `json:"cache_hit"`
	SnapshotVersion int       `json:"snapshot_version"`
	BuiltAt         time.Time `json:"built_at"`
	Timestamp       time.Time `json:"timestamp"`
}

// Status reports the engine's model and data state.
type Status struct {
	// SnapshotVersion increments with every successful build.
	SnapshotVersion int `json:"snapshot_version"`

	// BuiltAt is when the active snapshot was built.
	BuiltAt time.Time `json:"built_at"`

	// BuildDuration is how long the active snapshot took to build.
	BuildDuration time.Duration `json:"build_duration"`

	// Items is the catalog size.
	Items int `json:"items"`

	// Users is the number of known users.
	Users int `json:"users"`

	// Ratings is the total number of ratings across users.
	Ratings int `json:"ratings"`

	// SnapshotRatings is the number of ratings the active similarity matrix was built from.
	SnapshotRatings int `json:"snapshot_ratings"`

	// Rebuilding is true while a rebuild is running.
	Rebuilding bool `json:"rebuilding"`

	// CacheEntries is the number of cached responses.
	CacheEntries int `json:"cache_entries"`
}
