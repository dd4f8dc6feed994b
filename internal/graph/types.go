// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package graph

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/vibe"
)

// RelationshipType classifies how two restaurants relate.
type RelationshipType int

const (
	// TypeRelated is the fallback classification for retained pairs that
	// fit no stronger category.
	TypeRelated RelationshipType = iota
	// TypeSimilar indicates high overall similarity.
	TypeSimilar
	// TypeComplementary indicates a different feel and cuisine at a
	// compatible price point.
	TypeComplementary
	// TypeAlternative indicates moderate similarity, a reasonable substitute.
	TypeAlternative
)

// String returns the wire name for the relationship type.
func (t RelationshipType) String() string {
	switch t {
	case TypeSimilar:
		return "similar"
	case TypeComplementary:
		return "complementary"
	case TypeAlternative:
		return "alternative"
	case TypeRelated:
		return "related"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its string name.
func (t RelationshipType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the string name back into the typed constant.
func (t *RelationshipType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "similar":
		*t = TypeSimilar
	case "complementary":
		*t = TypeComplementary
	case "alternative":
		*t = TypeAlternative
	case "related":
		*t = TypeRelated
	default:
		return fmt.Errorf("unknown relationship type %q", s)
	}
	return nil
}

// Location identifies where a restaurant is. Either field may be empty;
// missing location data degrades proximity to 0, it never fails mapping.
type Location struct {
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
}

// Restaurant is the corpus input for a mapping pass.
type Restaurant struct {
	ID          string        `json:"id"`
	Cuisine     string        `json:"cuisine"`
	PriceRange  int           `json:"price_range"`
	Rating      float64       `json:"rating,omitempty"`
	Location    *Location     `json:"location,omitempty"`
	VibeProfile *vibe.Profile `json:"vibe_profile,omitempty"`
}

// Relationship is a directed edge from RestaurantA to RestaurantB. The
// underlying similarity is symmetric but edges are stored per source
// restaurant, so storage does not assume symmetry.
type Relationship struct {
	RestaurantA string `json:"restaurant_a_id"`
	RestaurantB string `json:"restaurant_b_id"`

	// SimilarityScore is the weighted composite of the four components.
	SimilarityScore float64 `json:"similarity_score"`

	VibeSimilarity    float64 `json:"vibe_similarity"`
	CuisineSimilarity float64 `json:"cuisine_similarity"`
	PriceSimilarity   float64 `json:"price_similarity"`
	LocationProximity float64 `json:"location_proximity"`

	Type RelationshipType `json:"relationship_type"`

	// Confidence reflects data completeness on both sides of the pair.
	Confidence float64 `json:"confidence"`

	CreatedAt time.Time `json:"created_at"`
}

// Related pairs a target restaurant id with its similarity score, for
// lookup results.
type Related struct {
	RestaurantID string  `json:"restaurant_id"`
	Score        float64 `json:"score"`
}
