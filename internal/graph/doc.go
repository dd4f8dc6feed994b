// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package graph maps pairwise relationships between restaurants and serves
// lookups over the resulting relationship cache.
//
// # Mapping
//
// A corpus pass compares every restaurant against every other (O(n^2)) and
// scores four components: vibe similarity (cosine over shared-vocabulary
// vectors), cuisine similarity (curated adjacency and category tables),
// price similarity (tier distance) and location proximity
// (neighborhood/city). The weighted composite determines whether a pair is
// retained (> the minimum threshold) and how it is classified: similar,
// complementary, alternative or related.
//
// Each restaurant keeps at most MaxRelationships edges, sorted by descending
// similarity with ties broken by ascending target id so repeated passes over
// the same corpus produce identical caches.
//
// # Cache
//
// The mapper has no persistent state of its own; each pass produces a fresh
// Cache which fully replaces the previous one. The Cache is an explicit
// value handed to callers, never package-level state. It supports similar
// and complementary lookups and bounded breadth-first network traversal.
//
// Callers must serialize writes: one corpus pass at a time, and no reads of
// a Cache concurrent with its construction.
//
// # Clustering
//
// VibeClusters groups restaurants by their single highest-scoring primary
// vibe and discards clusters below a minimum size. This is a deliberate
// single-pass heuristic, not an unsupervised clustering algorithm; it trades
// cluster quality for predictability and speed.
package graph
