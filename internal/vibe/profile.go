// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package vibe

import (
	"strings"
	"time"
)

// Neutral fallback used when validation yields zero primary vibes.
// Extraction must never produce an empty profile.
const (
	NeutralVibe  = "casual"
	NeutralScore = 0.5
)

// reviewConfidenceSaturation is the review count at which the review-count
// confidence factor reaches 1.0.
const reviewConfidenceSaturation = 10

// ScoredVibe pairs a taxonomy vibe token with an extraction score in [0, 1].
type ScoredVibe struct {
	Vibe  string  `json:"vibe"`
	Score float64 `json:"score"`
}

// Profile is the validated, normalized representation of a restaurant's
// extracted vibe. Construct it with NewProfile; a zero Profile carries no
// vibe signal and is treated as missing data by consumers.
type Profile struct {
	// PrimaryVibes are the dominant signals, ordered as extracted.
	PrimaryVibes []ScoredVibe `json:"primary_vibes"`

	// SecondaryVibes are supporting signals, always weighted at half
	// strength wherever consumed.
	SecondaryVibes []ScoredVibe `json:"secondary_vibes"`

	// EnergyLevel is 0 (calm) to 1 (energetic).
	EnergyLevel float64 `json:"energy_level"`

	// FormalityLevel is 0 (casual) to 1 (formal).
	FormalityLevel float64 `json:"formality_level"`

	// Confidence is the extraction reliability in [0, 1].
	Confidence float64 `json:"vibe_confidence"`

	// ExtractedAt is when the extraction was performed.
	ExtractedAt time.Time `json:"extracted_at"`

	// SourceTypes lists the data sources used, e.g. "reviews", "description".
	SourceTypes []string `json:"source_types"`
}

// ExtractionPayload is the unvalidated output of the external vibe
// extraction collaborator. NewProfile converts it to a Profile.
type ExtractionPayload struct {
	PrimaryVibes   []ScoredVibe `json:"primary_vibes"`
	SecondaryVibes []ScoredVibe `json:"secondary_vibes"`
	EnergyLevel    float64      `json:"energy_level"`
	FormalityLevel float64      `json:"formality_level"`
}

// NeutralPayload returns the fallback payload used when the extraction
// collaborator returns unparseable output.
func NeutralPayload() ExtractionPayload {
	return ExtractionPayload{
		PrimaryVibes:   []ScoredVibe{{Vibe: NeutralVibe, Score: NeutralScore}},
		EnergyLevel:    0.5,
		FormalityLevel: 0.5,
	}
}

// SourceData is the restaurant input handed to the extraction collaborator.
// It also drives confidence scoring and source-type provenance.
type SourceData struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	PriceRange  int      `json:"price_range"`
	Description string   `json:"description"`
	Reviews     []string `json:"reviews"`
}

// NewProfile validates an extraction payload against the taxonomy and
// produces a normalized Profile. It never fails: unknown vibe tokens are
// dropped, out-of-range scores are clamped, and an empty primary list is
// substituted with the neutral default.
func NewProfile(payload ExtractionPayload, src SourceData, tax Taxonomy, now time.Time) Profile {
	primary := validateVibes(payload.PrimaryVibes, tax)
	secondary := validateVibes(payload.SecondaryVibes, tax)

	if len(primary) == 0 {
		primary = []ScoredVibe{{Vibe: NeutralVibe, Score: NeutralScore}}
	}

	p := Profile{
		PrimaryVibes:   primary,
		SecondaryVibes: secondary,
		EnergyLevel:    clamp01(payload.EnergyLevel),
		FormalityLevel: clamp01(payload.FormalityLevel),
		ExtractedAt:    now,
		SourceTypes:    sourceTypes(src),
	}
	p.Confidence = extractionConfidence(src, p)
	return p
}

// validateVibes lowercases tokens, drops those missing from the taxonomy,
// and clamps scores to [0, 1].
func validateVibes(vibes []ScoredVibe, tax Taxonomy) []ScoredVibe {
	out := make([]ScoredVibe, 0, len(vibes))
	for _, sv := range vibes {
		token := strings.ToLower(strings.TrimSpace(sv.Vibe))
		if token == "" || !tax.Contains(token) {
			continue
		}
		out = append(out, ScoredVibe{Vibe: token, Score: clamp01(sv.Score)})
	}
	return out
}

// extractionConfidence combines three factors: data completeness
// (description and reviews present), review count (saturating at 10+),
// and mean vibe score strength.
func extractionConfidence(src SourceData, p Profile) float64 {
	var factors []float64

	var completeness float64
	if src.Description != "" {
		completeness += 0.5
	}
	if len(src.Reviews) > 0 {
		completeness += 0.5
	}
	factors = append(factors, completeness)

	reviewFactor := float64(len(src.Reviews)) / reviewConfidenceSaturation
	if reviewFactor > 1 {
		reviewFactor = 1
	}
	factors = append(factors, reviewFactor)

	var sum float64
	var n int
	for _, sv := range p.PrimaryVibes {
		sum += sv.Score
		n++
	}
	for _, sv := range p.SecondaryVibes {
		sum += sv.Score
		n++
	}
	if n > 0 {
		factors = append(factors, sum/float64(n))
	}

	var total float64
	for _, f := range factors {
		total += f
	}
	return total / float64(len(factors))
}

// sourceTypes records which input fields contributed to the extraction.
func sourceTypes(src SourceData) []string {
	var sources []string
	if src.Description != "" {
		sources = append(sources, "description")
	}
	if len(src.Reviews) > 0 {
		sources = append(sources, "reviews")
	}
	if src.Cuisine != "" {
		sources = append(sources, "cuisine")
	}
	if src.PriceRange > 0 {
		sources = append(sources, "price_range")
	}
	return sources
}

// VibeWeights flattens the profile into a vibe -> weight map with primary
// vibes at full weight and secondary vibes at half weight. A vibe present
// in both lists accumulates primary + 0.5*secondary.
func (p *Profile) VibeWeights() map[string]float64 {
	if p == nil {
		return nil
	}
	weights := make(map[string]float64, len(p.PrimaryVibes)+len(p.SecondaryVibes))
	for _, sv := range p.PrimaryVibes {
		weights[sv.Vibe] = sv.Score
	}
	for _, sv := range p.SecondaryVibes {
		weights[sv.Vibe] += sv.Score * 0.5
	}
	return weights
}

// TopPrimaryVibe returns the highest-scoring primary vibe, breaking exact
// ties by the lexicographically smallest token. ok is false for a nil
// profile or one with no primary vibes.
func (p *Profile) TopPrimaryVibe() (token string, ok bool) {
	if p == nil || len(p.PrimaryVibes) == 0 {
		return "", false
	}
	best := p.PrimaryVibes[0]
	for _, sv := range p.PrimaryVibes[1:] {
		if sv.Score > best.Score || (sv.Score == best.Score && sv.Vibe < best.Vibe) {
			best = sv
		}
	}
	return best.Vibe, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
