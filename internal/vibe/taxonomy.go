// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package vibe

import "sort"

// Taxonomy maps dimension names to their enumerated vibe tokens.
// It is the leaf dependency for all vector construction and validation.
type Taxonomy map[string][]string

// DefaultTaxonomy returns the built-in vibe taxonomy. Deployments can
// override it via configuration; the shape is always dimension -> tokens.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"atmosphere": {
			"casual", "upscale", "intimate", "lively", "romantic",
			"trendy", "classic", "modern", "rustic", "elegant",
		},
		"energy": {
			"calm", "vibrant", "bustling", "relaxed", "energetic",
		},
		"occasion": {
			"date-night", "business", "family-friendly", "celebration",
			"quick-bite", "special-occasion", "everyday",
		},
		"style": {
			"traditional", "innovative", "fusion", "authentic", "contemporary",
		},
	}
}

// Contains reports whether the vibe token exists in any dimension.
func (t Taxonomy) Contains(token string) bool {
	for _, tokens := range t {
		for _, v := range tokens {
			if v == token {
				return true
			}
		}
	}
	return false
}

// Tokens returns the deduplicated union of all vibe tokens across all
// dimensions, sorted lexicographically for deterministic ordering.
func (t Taxonomy) Tokens() []string {
	seen := make(map[string]struct{})
	for _, tokens := range t {
		for _, v := range tokens {
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
