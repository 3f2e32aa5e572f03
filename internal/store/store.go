// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
)

const (
	maxConflictRetries = 3
	gcDiscardRatio     = 0.5
)

// Store is the BadgerDB-backed community store. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the database described by cfg.
func Open(cfg config.StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.ValueLogFileSize = 64 << 20
		opts.SyncWrites = true
	}
	opts.Logger = newBadgerLogger()

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %q: %w", cfg.Path, err)
	}
	return NewFromDB(db), nil
}

// NewFromDB wraps an already open database.
func NewFromDB(db *badger.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is open and readable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("store is closed")
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// RunGC runs value log garbage collection until nothing more can be
// rewritten. It reports whether any file was rewritten.
func (s *Store) RunGC() (bool, error) {
	if s.db.Opts().InMemory {
		metrics.RecordStoreGC("noop")
		return false, nil
	}
	rewritten := false
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			rewritten = true
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		metrics.RecordStoreGC("error")
		return rewritten, fmt.Errorf("value log gc: %w", err)
	}
	if rewritten {
		metrics.RecordStoreGC("rewritten")
	} else {
		metrics.RecordStoreGC("noop")
	}
	return rewritten, nil
}

// view runs a read-only transaction and records its duration.
func (s *Store) view(op string, fn func(txn *badger.Txn) error) error {
	start := time.Now()
	err := s.db.View(fn)
	s.record(op, start, err)
	return err
}

// update runs a read-write transaction, retrying on conflicts. fn must not
// leak partial results across attempts.
func (s *Store) update(op string, fn func(txn *badger.Txn) error) error {
	start := time.Now()
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	s.record(op, start, err)
	return err
}

func (s *Store) record(op string, start time.Time, err error) {
	if isDomainError(err) {
		err = nil
	}
	metrics.RecordStoreOperation(op, time.Since(start), err)
	if err != nil {
		logging.Error().Err(err).Str("operation", op).Msg("Store operation failed")
	}
}

// key joins escaped segments with ':'. Subject and record IDs come from
// clients, so each segment is query-escaped: an ID containing ':' or '%' can
// never spell out another user's key or prefix.
func key(parts ...string) []byte {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.QueryEscape(p)
	}
	return []byte(strings.Join(escaped, ":"))
}

// prefix is key plus a trailing separator, so "friend:alice:" never matches
// rows of "alice2" or "alice:x".
func prefix(parts ...string) []byte {
	return append(key(parts...), ':')
}

func getJSON(txn *badger.Txn, k []byte, out interface{}) error {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", k, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *badger.Txn, k []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", k, err)
	}
	if err := txn.Set(k, data); err != nil {
		return fmt.Errorf("set %s: %w", k, err)
	}
	return nil
}

func exists(txn *badger.Txn, k []byte) (bool, error) {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", k, err)
	}
	return true, nil
}

func deleteKey(txn *badger.Txn, k []byte) error {
	if err := txn.Delete(k); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete %s: %w", k, err)
	}
	return nil
}

// scanPrefix calls fn with the value of every key under p.
func scanPrefix(txn *badger.Txn, p []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// keysWithPrefix returns copies of every key under p.
func keysWithPrefix(txn *badger.Txn, p []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}

// badgerLogger routes badger's internal logging through zerolog. Badger's
// info chatter is demoted to debug.
type badgerLogger struct {
	log zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{log: logging.WithComponent("badger")}
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (b *badgerLogger) Debugf(string, ...interface{}) {}
