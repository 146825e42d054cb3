// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"testing"
)

func TestNewItem(t *testing.T) {
	t.Parallel()

	item := NewItem(4, "Galactic Battles", "Action-Packed SPACE opera", "Sci-Fi", "action", " ACTION ", "")

	if item.Description != "action-packed space opera" {
		t.Errorf("Description = %q", item.Description)
	}
	want := []string{"action", "sci-fi"}
	if len(item.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", item.Tags, want)
	}
	for i := range want {
		if item.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, item.Tags[i], want[i])
		}
	}
	if item.Title != "Galactic Battles" {
		t.Errorf("Title = %q, want original case", item.Title)
	}
}

func TestItem_String(t *testing.T) {
	t.Parallel()

	if got := NewItem(3, "Mystery Manor", "").String(); got != "3: Mystery Manor" {
		t.Errorf("String() = %q", got)
	}
}

func TestUser_Rate(t *testing.T) {
	t.Parallel()

	u := NewUser(101)
	u.Rate(1, 5.0)
	u.Rate(1, 2.0)
	u.Rate(4, 4.0)

	if u.Len() != 2 {
		t.Errorf("Len() = %d, want 2", u.Len())
	}
	if v, ok := u.Rating(1); !ok || v != 2.0 {
		t.Errorf("Rating(1) = %v, %v, want 2.0", v, ok)
	}

	copied := u.Ratings()
	copied[9] = 1.0
	if _, ok := u.Rating(9); ok {
		t.Error("Ratings() returned the internal map")
	}

	var zero User
	zero.Rate(1, 3.0)
	if zero.Len() != 1 {
		t.Error("zero-value User cannot be rated")
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeHybrid},
		{in: "hybrid", want: ModeHybrid},
		{in: "Content", want: ModeContent},
		{in: "collaborative", want: ModeCollaborative},
		{in: "collab", want: ModeCollaborative},
		{in: "popular", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrInvalidMode", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
		if got.String() == "unknown" {
			t.Errorf("Mode(%d).String() = unknown", got)
		}
	}
}
