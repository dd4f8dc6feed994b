// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package vibe defines the vibe taxonomy, the validated restaurant vibe
// profile, and the numeric vector representation used for similarity.
//
// # Taxonomy
//
// The taxonomy is a fixed, finite mapping of dimension names (atmosphere,
// energy, occasion, style) to enumerated vibe tokens. It is supplied as
// configuration; DefaultTaxonomy returns the built-in set. Every vibe token
// stored in a Profile must exist in the taxonomy - unknown tokens are dropped
// at validation time, never stored.
//
// # Profiles
//
// NewProfile validates a raw extraction payload into a Profile:
//
//   - unknown vibe tokens are dropped
//   - out-of-range scores are clamped to [0, 1]
//   - an empty primary list is substituted with a neutral casual/0.5 entry
//
// Validation never fails; malformed extraction output degrades to documented
// defaults so that corpus-wide batch jobs are never aborted by one bad record.
//
// # Vectors
//
// Vectors for pairwise comparison must be built against a shared Vocabulary
// constructed once per batch from the taxonomy plus every profile in the
// corpus. Building vocabularies per profile would produce vectors of
// inconsistent dimensionality; NewVocabulary makes the shared step explicit.
package vibe
