// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("rating store is closed")

const keyPrefix = "rating:"

// Options configures a RatingStore.
type Options struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// Compression enables Snappy block compression.
	Compression bool
}

// record is the persisted form of a rating.
type record struct {
	UserID  int       `json:"user_id"`
	ItemID  int       `json:"item_id"`
	Value   float64   `json:"rating"`
	RatedAt time.Time `json:"rated_at"`
}

// RatingStore is a BadgerDB-backed rating log keyed by user and item.
type RatingStore struct {
	db     *badger.DB
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) a rating store.
func Open(opts Options, logger zerolog.Logger) (*RatingStore, error) {
	if !opts.InMemory && opts.Path == "" {
		return nil, errors.New("store path is required")
	}

	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.SyncWrites = opts.SyncWrites
	if opts.Compression {
		bopts.Compression = options.Snappy
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &RatingStore{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}
	s.logger.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Bool("sync_writes", opts.SyncWrites).
		Msg("rating store opened")
	return s, nil
}

func ratingKey(userID, itemID int) []byte {
	return []byte(keyPrefix + strconv.Itoa(userID) + ":" + strconv.Itoa(itemID))
}

func userPrefix(userID int) []byte {
	return []byte(keyPrefix + strconv.Itoa(userID) + ":")
}

func (s *RatingStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Save persists r, replacing any earlier rating of the same item by the same user.
func (s *RatingStore) Save(ctx context.Context, r recommend.Rating) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("save", time.Since(start), err) }()

	if err = s.checkOpen(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record{
		UserID:  r.UserID,
		ItemID:  r.ItemID,
		Value:   r.Value,
		RatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ratingKey(r.UserID, r.ItemID), data)
	})
	if err != nil {
		return fmt.Errorf("write rating: %w", err)
	}
	return nil
}

// Get returns the stored rating for a user and item.
func (s *RatingStore) Get(ctx context.Context, userID, itemID int) (r recommend.Rating, found bool, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("get", time.Since(start), err) }()

	if err = s.checkOpen(); err != nil {
		return r, false, err
	}
	if err = ctx.Err(); err != nil {
		return r, false, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, gerr := txn.Get(ratingKey(userID, itemID))
		if errors.Is(gerr, badger.ErrKeyNotFound) {
			return nil
		}
		if gerr != nil {
			return gerr
		}
		var rec record
		if verr := item.Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); verr != nil {
			return verr
		}
		r = recommend.Rating{UserID: rec.UserID, ItemID: rec.ItemID, Value: rec.Value}
		found = true
		return nil
	})
	if err != nil {
		return recommend.Rating{}, false, fmt.Errorf("read rating: %w", err)
	}
	return r, found, nil
}

// Delete removes a stored rating. Deleting a missing rating is not an error.
func (s *RatingStore) Delete(ctx context.Context, userID, itemID int) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("delete", time.Since(start), err) }()

	if err = s.checkOpen(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(ratingKey(userID, itemID))
	})
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	return nil
}

// Replay calls fn for every stored rating in key order. Records that fail to
// decode are logged and skipped. An error from fn stops the replay.
func (s *RatingStore) Replay(ctx context.Context, fn func(recommend.Rating) error) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("replay", time.Since(start), err) }()

	if err = s.checkOpen(); err != nil {
		return err
	}

	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}

			item := it.Item()
			var rec record
			if verr := item.Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); verr != nil {
				s.logger.Warn().Err(verr).Str("key", string(item.Key())).Msg("skipping undecodable rating")
				continue
			}
			if ferr := fn(recommend.Rating{UserID: rec.UserID, ItemID: rec.ItemID, Value: rec.Value}); ferr != nil {
				return ferr
			}
		}
		return nil
	})
}

// Load returns every stored rating.
func (s *RatingStore) Load(ctx context.Context) ([]recommend.Rating, error) {
	var out []recommend.Rating
	err := s.Replay(ctx, func(r recommend.Rating) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountUser returns the number of stored ratings for a user.
func (s *RatingStore) CountUser(ctx context.Context, userID int) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	prefix := userPrefix(userID)
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.Valid() && bytes.HasPrefix(it.Item().Key(), prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// maxPendingRestoreWrites bounds Badger's in-flight batches during Restore.
const maxPendingRestoreWrites = 256

// Backup writes a full Badger backup of the store to w and returns the
// version watermark it covers.
func (s *RatingStore) Backup(ctx context.Context, w io.Writer) (version uint64, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("backup", time.Since(start), err) }()

	if err = s.checkOpen(); err != nil {
		return 0, err
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	version, err = s.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup: %w", err)
	}
	s.logger.Info().Uint64("version", version).Dur("duration", time.Since(start)).Msg("rating store backed up")
	return version, nil
}

// Restore loads a backup produced by Backup. Existing keys are overwritten
// by the backup's values; keys absent from the backup are kept.
func (s *RatingStore) Restore(ctx context.Context, r io.Reader) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("restore", time.Since(start), err) }()

	if err = s.checkOpen(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	if err = s.db.Load(r, maxPendingRestoreWrites); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("rating store restored")
	return nil
}

// Close closes the underlying database. It is safe to call more than once.
func (s *RatingStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("rating store closed")
	return nil
}
