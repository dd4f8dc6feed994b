// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

// Key prefixes for BadgerDB storage.
const (
	vibeKeyPrefix        = "vibe:"
	tasteKeyPrefix       = "taste:"
	relationshipPrefix   = "rel:"
	interactionKeyPrefix = "interactions:"
)

// ErrNotFound marks a missing record. Callers should test with errors.Is.
var ErrNotFound = errors.New("record not found")

// Config contains configuration for the store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `json:"path" koanf:"path"`

	// SyncWrites forces an fsync on every write. Slower, durable.
	SyncWrites bool `json:"sync_writes" koanf:"sync_writes"`

	// InMemory keeps all state in memory. Intended for tests.
	InMemory bool `json:"in_memory" koanf:"in_memory"`
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Path:       "data/tastegraph",
		SyncWrites: false,
	}
}

// Validate checks configuration ranges.
func (c Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("path is required unless in_memory is set")
	}
	return nil
}

// Store is a BadgerDB-backed persistence layer for vibe profiles, taste
// profiles, relationships and interaction logs. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open creates or opens the store at the configured path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.SyncWrites = cfg.SyncWrites
	opts.InMemory = cfg.InMemory
	if cfg.InMemory {
		opts.Dir = ""
		opts.ValueDir = ""
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	componentLogger := logger.With().Str("component", "store").Logger()
	componentLogger.Info().
		Str("path", cfg.Path).
		Bool("sync_writes", cfg.SyncWrites).
		Bool("in_memory", cfg.InMemory).
		Msg("store opened")

	return &Store{db: db, logger: componentLogger}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// setJSON writes one marshaled record.
func (s *Store) setJSON(key string, data []byte) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	metrics.RecordStoreOperation("set", time.Since(start), err)
	return err
}

// getJSON reads one record's raw value. Returns ErrNotFound for missing
// keys.
func (s *Store) getJSON(key string) ([]byte, error) {
	start := time.Now()
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		metrics.RecordStoreOperation("get", time.Since(start), nil)
		return nil, err
	}
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}
