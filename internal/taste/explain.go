// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import (
	"fmt"
	"sort"
	"strings"
)

// explain builds the advisory explanation map from component thresholds.
// Output is for downstream UI only and must never feed back into scoring.
func (e *Engine) explain(p *Profile, r Restaurant, restaurantVibes map[string]float64, m Match) map[string]string {
	explanation := make(map[string]string)

	switch {
	case m.VibeAlignment > 0.7:
		if overlap := matchingPreferredVibes(p.PreferredVibes, restaurantVibes, 2); len(overlap) > 0 {
			explanation["vibe"] = fmt.Sprintf(
				"Perfect match for your love of %s atmospheres", strings.Join(overlap, ", "))
		}
	case m.VibeAlignment < 0.3:
		explanation["vibe"] = "Different from your usual preferences - might be an adventure!"
	}

	cuisine := strings.ToLower(r.Cuisine)
	if _, known := p.CuisinePreferences[cuisine]; known {
		title := titleCase(cuisine)
		if m.CuisineMatch > 0.8 {
			explanation["cuisine"] = fmt.Sprintf("One of your favorite cuisines: %s", title)
		} else if m.CuisineMatch > 0.5 {
			explanation["cuisine"] = fmt.Sprintf("You've enjoyed %s before", title)
		}
	}

	if p.PriceSensitivity > 0.7 {
		if m.PriceMatch < 0.5 {
			explanation["price"] = "Higher than your usual price range"
		} else if m.PriceMatch > 0.8 {
			explanation["price"] = "Great value in your price range"
		}
	}

	if m.ContextScore > 0.7 {
		explanation["context"] = "Perfect for the occasion"
	}

	return explanation
}

// matchingPreferredVibes returns up to limit preferred vibes present in the
// restaurant, sorted for deterministic output.
func matchingPreferredVibes(preferred, restaurantVibes map[string]float64, limit int) []string {
	var overlap []string
	for vibe := range preferred {
		if _, ok := restaurantVibes[vibe]; ok {
			overlap = append(overlap, vibe)
		}
	}
	sort.Strings(overlap)
	if len(overlap) > limit {
		overlap = overlap[:limit]
	}
	return overlap
}

// titleCase uppercases the first letter of each hyphen- or space-separated
// word, for display only.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
