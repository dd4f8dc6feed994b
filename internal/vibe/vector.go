// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package vibe

import (
	"math"
	"sort"
)

// Vocabulary fixes the index order of vibe tokens for vector construction.
// It must be built once per batch from the taxonomy plus every profile that
// will be compared; vectors built against different vocabularies are not
// comparable.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// NewVocabulary builds the shared vocabulary for a batch: the union of all
// taxonomy tokens plus any vibe tokens present in the given profiles, sorted
// lexicographically. Profiles may legitimately reference a taxonomy vibe not
// otherwise enumerated, so the union is defensive rather than redundant.
func NewVocabulary(tax Taxonomy, profiles ...*Profile) *Vocabulary {
	seen := make(map[string]struct{})
	for _, tokens := range tax {
		for _, v := range tokens {
			seen[v] = struct{}{}
		}
	}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		for _, sv := range p.PrimaryVibes {
			seen[sv.Vibe] = struct{}{}
		}
		for _, sv := range p.SecondaryVibes {
			seen[sv.Vibe] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(seen))
	for v := range seen {
		tokens = append(tokens, v)
	}
	sort.Strings(tokens)

	index := make(map[string]int, len(tokens))
	for i, v := range tokens {
		index[v] = i
	}
	return &Vocabulary{tokens: tokens, index: index}
}

// Tokens returns the vocabulary tokens in index order.
func (voc *Vocabulary) Tokens() []string {
	out := make([]string, len(voc.tokens))
	copy(out, voc.tokens)
	return out
}

// Dim returns the vector dimensionality: one slot per token plus the two
// trailing energy and formality dimensions.
func (voc *Vocabulary) Dim() int {
	return len(voc.tokens) + 2
}

// Vector builds the numeric vector for a profile. Primary vibe scores fill
// their vocabulary index; secondary scores add at half weight. Energy and
// formality levels occupy the two trailing dimensions. Returns nil for a
// nil profile (missing vibe data).
func (voc *Vocabulary) Vector(p *Profile) []float64 {
	if p == nil {
		return nil
	}

	vec := make([]float64, voc.Dim())
	for _, sv := range p.PrimaryVibes {
		if i, ok := voc.index[sv.Vibe]; ok {
			vec[i] = sv.Score
		}
	}
	for _, sv := range p.SecondaryVibes {
		if i, ok := voc.index[sv.Vibe]; ok {
			vec[i] += sv.Score * 0.5
		}
	}
	vec[len(vec)-2] = p.EnergyLevel
	vec[len(vec)-1] = p.FormalityLevel
	return vec
}

// Cosine computes cosine similarity between two vectors of equal length.
// Returns 0 when either vector is empty or has zero magnitude.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
