// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import (
	"errors"
	"strings"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

// ErrMissingRestaurantID marks the one hard failure in match scoring: a
// candidate without an id is a programmer error, not degradable data.
var ErrMissingRestaurantID = errors.New("restaurant id is required")

// noveltyBase and noveltyAdventureWeight shape the fallback cuisine score
// for cuisines the user has never tried: 0.3 + 0.4 * adventure_score.
const (
	noveltyBase            = 0.3
	noveltyAdventureWeight = 0.4
)

// similarCuisineDiscount applies when the match comes through a cuisine
// group rather than a direct preference.
const similarCuisineDiscount = 0.8

// cuisineGroups are the curated similar-cuisine groups for match scoring.
// Deliberately distinct from the mapper's adjacency table: matching cares
// about what a diner perceives as the same family, mapping about culinary
// lineage.
var cuisineGroups = map[string][]string{
	"asian":          {"chinese", "japanese", "thai", "vietnamese", "korean"},
	"european":       {"italian", "french", "spanish", "greek", "german"},
	"latin":          {"mexican", "peruvian", "brazilian", "argentinian"},
	"middle_eastern": {"lebanese", "turkish", "persian", "israeli"},
}

// CalculateMatch scores a restaurant against a profile, optionally under a
// context. Missing data degrades component scores to neutral defaults; the
// only hard failure is a restaurant without an id.
func (e *Engine) CalculateMatch(p *Profile, r Restaurant, ctx *Context) (Match, error) {
	if r.ID == "" {
		return Match{}, ErrMissingRestaurantID
	}

	restaurantVibes := r.VibeProfile.VibeWeights()

	vibeAlignment := vibeAlignment(p.PreferredVibes, p.AvoidedVibes, restaurantVibes)
	cuisineMatch := cuisineMatch(p, r.Cuisine)
	priceMatch := priceMatch(p.PriceSensitivity, r.PriceRange)
	contextScore := contextScore(restaurantVibes, ctx)

	composite := e.weights.Vibe*vibeAlignment +
		e.weights.Cuisine*cuisineMatch +
		e.weights.Price*priceMatch +
		e.weights.Context*contextScore

	m := Match{
		RestaurantID:  r.ID,
		MatchScore:    composite,
		VibeAlignment: vibeAlignment,
		CuisineMatch:  cuisineMatch,
		PriceMatch:    priceMatch,
		ContextScore:  contextScore,
	}
	m.Explanation = e.explain(p, r, restaurantVibes, m)

	metrics.MatchesComputed.Inc()
	return m, nil
}

// vibeAlignment scores preferred vibes positively and avoided vibes
// negatively over the vibes the restaurant actually has, normalized by the
// total matched weight and rescaled from [-1, 1] to [0, 1]. No overlapping
// vibes, or no restaurant vibe data at all, is neutral 0.5.
func vibeAlignment(preferred, avoided, restaurantVibes map[string]float64) float64 {
	if len(restaurantVibes) == 0 {
		return 0.5
	}

	var score, totalWeight float64
	for vibe, strength := range preferred {
		if w, ok := restaurantVibes[vibe]; ok {
			score += strength * w
			totalWeight += strength
		}
	}
	for vibe, strength := range avoided {
		if w, ok := restaurantVibes[vibe]; ok {
			score -= strength * w
			totalWeight += strength
		}
	}

	if totalWeight == 0 {
		return 0.5
	}
	return clamp01((score/totalWeight + 1) / 2)
}

// cuisineMatch looks the cuisine up directly, then through the similar
// cuisine groups at a discount, and finally falls back to a novelty score
// that rewards adventurous users for unknown cuisines.
func cuisineMatch(p *Profile, cuisine string) float64 {
	if cuisine == "" {
		return 0.5
	}
	cuisine = strings.ToLower(cuisine)

	if affinity, ok := p.CuisinePreferences[cuisine]; ok {
		return affinity
	}

	for _, members := range cuisineGroups {
		if !containsString(members, cuisine) {
			continue
		}
		for _, similar := range members {
			if similar == cuisine {
				continue
			}
			if affinity, ok := p.CuisinePreferences[similar]; ok {
				return affinity * similarCuisineDiscount
			}
		}
	}

	return noveltyBase + noveltyAdventureWeight*p.AdventureScore
}

// priceMatch is a three-regime curve keyed by price sensitivity. Sensitive
// diners strongly prefer low tiers, insensitive diners slightly prefer high
// tiers, and the middle regime is a bell curve centered on tier 2 ($$).
func priceMatch(sensitivity float64, tier int) float64 {
	switch {
	case sensitivity > 0.7:
		v := 1 - float64(tier-1)*0.3
		if v < 0 {
			return 0
		}
		return v
	case sensitivity < 0.3:
		return 0.8 + float64(tier)/20
	default:
		v := 1 - absFloat(float64(tier)-2)*0.2
		if v < 0 {
			return 0
		}
		return v
	}
}

func containsString(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
