// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import (
	"fmt"
	"time"
)

// MatchWeights defines the contribution of each component to the composite
// match score. Weights are normalized at engine construction.
type MatchWeights struct {
	Vibe    float64 `json:"vibe" koanf:"vibe"`
	Cuisine float64 `json:"cuisine" koanf:"cuisine"`
	Price   float64 `json:"price" koanf:"price"`
	Context float64 `json:"context" koanf:"context"`
}

// Config contains configuration for the taste engine.
type Config struct {
	// DecayRate multiplies unreinforced preference strengths on each decay
	// application.
	DecayRate float64 `json:"decay_rate" koanf:"decay_rate"`

	// DecayWindow is how far back an interaction still counts as
	// reinforcement.
	DecayWindow time.Duration `json:"decay_window" koanf:"decay_window"`

	// HistoryLimit caps the interaction history; oldest entries drop first.
	HistoryLimit int `json:"history_limit" koanf:"history_limit"`

	// MinStrength is the deletion floor for preference entries.
	MinStrength float64 `json:"min_strength" koanf:"min_strength"`

	// Weights defines the component mix for match scoring.
	Weights MatchWeights `json:"weights" koanf:"weights"`
}

// DefaultConfig returns the default taste engine configuration.
func DefaultConfig() Config {
	return Config{
		DecayRate:    0.95,
		DecayWindow:  30 * 24 * time.Hour,
		HistoryLimit: 100,
		MinStrength:  0.1,
		Weights: MatchWeights{
			Vibe:    0.4,
			Cuisine: 0.3,
			Price:   0.15,
			Context: 0.15,
		},
	}
}

// Validate checks configuration ranges.
func (c Config) Validate() error {
	if c.DecayRate <= 0 || c.DecayRate > 1 {
		return fmt.Errorf("decay_rate must be in (0, 1], got %f", c.DecayRate)
	}
	if c.DecayWindow <= 0 {
		return fmt.Errorf("decay_window must be positive, got %v", c.DecayWindow)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.MinStrength < 0 || c.MinStrength >= 1 {
		return fmt.Errorf("min_strength must be in [0, 1), got %f", c.MinStrength)
	}
	w := c.Weights
	if w.Vibe < 0 || w.Cuisine < 0 || w.Price < 0 || w.Context < 0 {
		return fmt.Errorf("match weights must be non-negative")
	}
	if w.Vibe+w.Cuisine+w.Price+w.Context == 0 {
		return fmt.Errorf("at least one match weight must be positive")
	}
	return nil
}

// normalized returns the weights scaled to sum to 1.0.
func (w MatchWeights) normalized() MatchWeights {
	total := w.Vibe + w.Cuisine + w.Price + w.Context
	if total == 0 {
		return w
	}
	return MatchWeights{
		Vibe:    w.Vibe / total,
		Cuisine: w.Cuisine / total,
		Price:   w.Price / total,
		Context: w.Context / total,
	}
}
