// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package graph

import "fmt"

// ComponentWeights defines the contribution of each similarity component to
// the composite score. Weights are normalized at construction time, so they
// do not need to sum to 1.0.
type ComponentWeights struct {
	Vibe     float64 `json:"vibe" koanf:"vibe"`
	Cuisine  float64 `json:"cuisine" koanf:"cuisine"`
	Price    float64 `json:"price" koanf:"price"`
	Location float64 `json:"location" koanf:"location"`
}

// Config contains configuration for the relationship mapper.
type Config struct {
	// MaxRelationships caps the number of edges retained per restaurant.
	MaxRelationships int `json:"max_relationships" koanf:"max_relationships"`

	// MinSimilarity is the composite-score threshold; pairs at or below it
	// are discarded before ranking and do not count toward the cap.
	MinSimilarity float64 `json:"min_similarity" koanf:"min_similarity"`

	// Weights defines the component mix for the composite score.
	Weights ComponentWeights `json:"weights" koanf:"weights"`
}

// DefaultConfig returns the default mapper configuration.
func DefaultConfig() Config {
	return Config{
		MaxRelationships: 10,
		MinSimilarity:    0.3,
		Weights: ComponentWeights{
			Vibe:     0.4,
			Cuisine:  0.25,
			Price:    0.15,
			Location: 0.2,
		},
	}
}

// Validate checks configuration ranges.
func (c Config) Validate() error {
	if c.MaxRelationships <= 0 {
		return fmt.Errorf("max_relationships must be positive, got %d", c.MaxRelationships)
	}
	if c.MinSimilarity < 0 || c.MinSimilarity >= 1 {
		return fmt.Errorf("min_similarity must be in [0, 1), got %f", c.MinSimilarity)
	}
	w := c.Weights
	if w.Vibe < 0 || w.Cuisine < 0 || w.Price < 0 || w.Location < 0 {
		return fmt.Errorf("component weights must be non-negative")
	}
	if w.Vibe+w.Cuisine+w.Price+w.Location == 0 {
		return fmt.Errorf("at least one component weight must be positive")
	}
	return nil
}

// normalized returns the weights scaled to sum to 1.0.
func (w ComponentWeights) normalized() ComponentWeights {
	total := w.Vibe + w.Cuisine + w.Price + w.Location
	if total == 0 {
		return w
	}
	return ComponentWeights{
		Vibe:     w.Vibe / total,
		Cuisine:  w.Cuisine / total,
		Price:    w.Price / total,
		Location: w.Location / total,
	}
}
