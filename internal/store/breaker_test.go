// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/recommend"
)

func TestNewGuardedStore_Defaults(t *testing.T) {
	g := NewGuardedStore(openTestStore(t), BreakerConfig{}, zerolog.Nop())

	if g.name != "rating-store" {
		t.Errorf("name = %q, want rating-store", g.name)
	}
	if g.State() != "closed" {
		t.Errorf("State() = %q, want closed", g.State())
	}
}

func TestGuardedStore_SavePassesThrough(t *testing.T) {
	s := openTestStore(t)
	g := NewGuardedStore(s, BreakerConfig{Name: "test-pass"}, zerolog.Nop())
	ctx := context.Background()

	if err := g.Save(ctx, recommend.Rating{UserID: 1, ItemID: 2, Value: 4}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	r, found, err := s.Get(ctx, 1, 2)
	if err != nil || !found || r.Value != 4 {
		t.Errorf("Get() = %+v, %v, %v", r, found, err)
	}
}

func TestGuardedStore_OpensAfterConsecutiveFailures(t *testing.T) {
	s := openTestStore(t)
	g := NewGuardedStore(s, BreakerConfig{
		Name:             "test-open",
		FailureThreshold: 3,
		Timeout:          time.Hour,
	}, zerolog.Nop())
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	rating := recommend.Rating{UserID: 1, ItemID: 1, Value: 3}
	for i := 0; i < 3; i++ {
		err := g.Save(ctx, rating)
		if !errors.Is(err, ErrStoreClosed) {
			t.Fatalf("Save() #%d error = %v, want ErrStoreClosed", i, err)
		}
		if IsUnavailable(err) {
			t.Fatalf("Save() #%d rejected before threshold", i)
		}
	}

	if g.State() != "open" {
		t.Fatalf("State() = %q, want open", g.State())
	}
	err := g.Save(ctx, rating)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Save() error = %v, want ErrOpenState", err)
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable() = false for open breaker")
	}
}

func TestGuardedStore_CancelledContextDoesNotTrip(t *testing.T) {
	g := NewGuardedStore(openTestStore(t), BreakerConfig{
		Name:             "test-cancel",
		FailureThreshold: 1,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 3; i++ {
		if err := g.Save(ctx, recommend.Rating{UserID: 1, ItemID: 1, Value: 3}); !errors.Is(err, context.Canceled) {
			t.Fatalf("Save() error = %v, want context.Canceled", err)
		}
	}
	if g.State() != "closed" {
		t.Errorf("State() = %q, want closed", g.State())
	}
}

func TestGuardedStore_BackupBypassesBreaker(t *testing.T) {
	s := openTestStore(t)
	g := NewGuardedStore(s, BreakerConfig{Name: "test-backup"}, zerolog.Nop())
	ctx := context.Background()

	if err := g.Save(ctx, recommend.Rating{UserID: 5, ItemID: 6, Value: 2}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := g.Backup(ctx, &buf); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Backup() wrote nothing")
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"open", gobreaker.ErrOpenState, true},
		{"too many", gobreaker.ErrTooManyRequests, true},
		{"wrapped", errors.Join(errors.New("save"), gobreaker.ErrOpenState), true},
		{"store error", ErrStoreClosed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnavailable(tt.err); got != tt.want {
				t.Errorf("IsUnavailable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
