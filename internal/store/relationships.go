// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/graph"
	"github.com/tomtom215/tastegraph/internal/metrics"
)

// ReplaceRelationships atomically replaces the whole persisted relationship
// graph with the output of one mapping pass. Each pass is authoritative, so
// stale edges from previous passes never survive.
func (s *Store) ReplaceRelationships(_ context.Context, rels []graph.Relationship) error {
	start := time.Now()

	// Collect existing keys first; Badger iterators cannot span a delete.
	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(relationshipPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreOperation("scan", time.Since(start), err)
		return fmt.Errorf("scan stale relationships: %w", err)
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for _, key := range stale {
		if err := batch.Delete(key); err != nil {
			return fmt.Errorf("delete stale relationship: %w", err)
		}
	}
	for i := range rels {
		data, err := json.Marshal(&rels[i])
		if err != nil {
			return fmt.Errorf("marshal relationship: %w", err)
		}
		key := relationshipPrefix + rels[i].RestaurantA + ":" + rels[i].RestaurantB
		if err := batch.Set([]byte(key), data); err != nil {
			return fmt.Errorf("set relationship: %w", err)
		}
	}

	err = batch.Flush()
	metrics.RecordStoreOperation("set", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("flush relationships: %w", err)
	}

	s.logger.Info().
		Int("deleted", len(stale)).
		Int("written", len(rels)).
		Msg("relationship graph replaced")
	return nil
}

// GetRelationships retrieves the persisted outgoing relationships for one
// restaurant, in stored key order. Returns an empty slice, not ErrNotFound,
// for restaurants without edges.
func (s *Store) GetRelationships(_ context.Context, restaurantID string) ([]graph.Relationship, error) {
	start := time.Now()
	var rels []graph.Relationship

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(relationshipPrefix + restaurantID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rel graph.Relationship
				if err := json.Unmarshal(val, &rel); err != nil {
					return fmt.Errorf("unmarshal relationship: %w", err)
				}
				rels = append(rels, rel)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	metrics.RecordStoreOperation("scan", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rels, nil
}
