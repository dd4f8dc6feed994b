// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package graph

import "strings"

// cuisineAdjacency is the curated table of directly related cuisines.
// Lookups are checked in both directions, so entries need not be mirrored.
var cuisineAdjacency = map[string]map[string]struct{}{
	// Regional relationships
	"italian":  setOf("mediterranean", "french", "spanish"),
	"japanese": setOf("sushi", "ramen", "korean", "asian-fusion"),
	"chinese":  setOf("taiwanese", "cantonese", "szechuan", "asian"),
	"mexican":  setOf("tex-mex", "latin", "spanish", "southwestern"),
	"thai":     setOf("vietnamese", "malaysian", "southeast-asian"),
	"french":   setOf("italian", "spanish", "european", "bistro"),
	"indian":   setOf("pakistani", "nepalese", "sri-lankan", "south-asian"),
	"greek":    setOf("mediterranean", "middle-eastern", "turkish"),
	// Style relationships
	"steakhouse": setOf("american", "bbq", "grill"),
	"seafood":    setOf("sushi", "mediterranean", "coastal"),
	"vegetarian": setOf("vegan", "healthy", "organic"),
	"fusion":     setOf("contemporary", "innovative", "eclectic"),
}

// cuisineCategories groups cuisines into broad buckets for the weakest
// similarity tier.
var cuisineCategories = map[string]map[string]struct{}{
	"asian":    setOf("chinese", "japanese", "thai", "vietnamese", "korean", "indian"),
	"european": setOf("italian", "french", "spanish", "greek", "german"),
	"american": setOf("american", "bbq", "southern", "tex-mex", "burger"),
	"latin":    setOf("mexican", "peruvian", "brazilian", "argentinian", "cuban"),
}

func setOf(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// CuisineSimilarity scores how closely two cuisines relate:
//
//	1.0  exact match
//	0.8  directly listed relationship (either direction)
//	0.6  both adjacent to a common third cuisine
//	0.4  same broad category
//	0.0  unrelated, or either cuisine missing
func CuisineSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}

	if _, ok := cuisineAdjacency[a][b]; ok {
		return 0.8
	}
	if _, ok := cuisineAdjacency[b][a]; ok {
		return 0.8
	}

	for related := range cuisineAdjacency[a] {
		if _, ok := cuisineAdjacency[b][related]; ok {
			return 0.6
		}
	}

	for _, members := range cuisineCategories {
		_, hasA := members[a]
		_, hasB := members[b]
		if hasA && hasB {
			return 0.4
		}
	}

	return 0.0
}
