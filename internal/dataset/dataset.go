// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// Format is a dataset file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is a catalog plus the ratings known at startup.
type Dataset struct {
	Items   []recommend.Item
	Ratings []recommend.Rating
}

type fileItem struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
}

type file struct {
	Items   []fileItem         `json:"items" yaml:"items"`
	Ratings []recommend.Rating `json:"ratings" yaml:"ratings"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a dataset. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Dataset, error) {
	var f file
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	ds := &Dataset{
		Items:   make([]recommend.Item, len(f.Items)),
		Ratings: f.Ratings,
	}
	for i, it := range f.Items {
		ds.Items[i] = recommend.NewItem(it.ID, it.Title, it.Description, it.Tags...)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks that item ids are positive and unique, and that every
// rating has a positive user id, refers to a catalog item and is finite.
// Rating bounds are left to the engine, which owns the scale.
func (d *Dataset) Validate() error {
	if len(d.Items) == 0 {
		return errors.New("dataset has no items")
	}

	known := make(map[int]bool, len(d.Items))
	for _, it := range d.Items {
		if it.ID <= 0 {
			return fmt.Errorf("item id must be positive, got %d", it.ID)
		}
		if known[it.ID] {
			return fmt.Errorf("%w: %d", recommend.ErrDuplicateItem, it.ID)
		}
		known[it.ID] = true
	}

	for i, r := range d.Ratings {
		switch {
		case r.UserID <= 0:
			return fmt.Errorf("rating %d: %w: %d", i, recommend.ErrInvalidUser, r.UserID)
		case !known[r.ItemID]:
			return fmt.Errorf("rating %d: %w: %d", i, recommend.ErrUnknownItem, r.ItemID)
		case math.IsNaN(r.Value) || math.IsInf(r.Value, 0):
			return fmt.Errorf("rating %d: %w: %v", i, recommend.ErrInvalidRating, r.Value)
		}
	}
	return nil
}

// Users groups the ratings by user, ordered by user id.
// A later rating of the same item replaces an earlier one.
func (d *Dataset) Users() []*recommend.User {
	byID := make(map[int]*recommend.User)
	for _, r := range d.Ratings {
		u, ok := byID[r.UserID]
		if !ok {
			u = recommend.NewUser(r.UserID)
			byID[r.UserID] = u
		}
		u.Rate(r.ItemID, r.Value)
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	users := make([]*recommend.User, len(ids))
	for i, id := range ids {
		users[i] = byID[id]
	}
	return users
}
