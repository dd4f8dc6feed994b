// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package store persists taste graph state in BadgerDB.

The store is a thin key-value layer over Badger with JSON values. It holds
four record families:

	vibe:<restaurant_id>          validated vibe profiles
	taste:<user_id>               learned taste profiles
	rel:<a_id>:<b_id>             directed relationships from the mapper
	interactions:<user_id>        raw interaction log per user

Relationships are written as a bulk replacement: each mapping pass is
authoritative for the whole graph, so ReplaceRelationships drops every rel:
key before writing the new pass. Lookups for one restaurant are a prefix
scan over rel:<id>:.

Missing keys return ErrNotFound; callers distinguish absence from real
storage failures with errors.Is.

# Testing

Open with Config.InMemory for tests; no files are created and Close
discards all state.
*/
package store
