// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package graph

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/vibe"
)

// Mapper computes pairwise restaurant relationships over a corpus. It is a
// pure computation: each pass produces a fresh Cache and the mapper itself
// holds no mutable state, so a single Mapper may serve concurrent passes
// over disjoint corpora.
type Mapper struct {
	cfg      Config
	weights  ComponentWeights
	taxonomy vibe.Taxonomy
	logger   zerolog.Logger
}

// NewMapper creates a relationship mapper.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMapper(cfg Config, tax vibe.Taxonomy, logger zerolog.Logger) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(tax) == 0 {
		tax = vibe.DefaultTaxonomy()
	}
	return &Mapper{
		cfg:      cfg,
		weights:  cfg.Weights.normalized(),
		taxonomy: tax,
		logger:   logger.With().Str("component", "graph").Logger(),
	}, nil
}

// MapRelationships runs a full corpus pass and returns the resulting cache.
// Restaurants without a vibe profile still participate through cuisine,
// price and location; their vibe similarity contributes 0. A restaurant with
// an empty id is a programmer error and aborts the pass.
func (m *Mapper) MapRelationships(ctx context.Context, restaurants []Restaurant) (*Cache, error) {
	start := time.Now()

	profiles := make([]*vibe.Profile, 0, len(restaurants))
	for i := range restaurants {
		if restaurants[i].ID == "" {
			return nil, fmt.Errorf("restaurant at index %d has no id", i)
		}
		profiles = append(profiles, restaurants[i].VibeProfile)
	}

	// One shared vocabulary per batch. Vectors built against per-profile
	// vocabularies would not be dimensionally comparable.
	voc := vibe.NewVocabulary(m.taxonomy, profiles...)
	vectors := make(map[string][]float64, len(restaurants))
	for i := range restaurants {
		if restaurants[i].VibeProfile != nil {
			vectors[restaurants[i].ID] = voc.Vector(restaurants[i].VibeProfile)
		}
	}

	now := time.Now().UTC()
	var pairs, discarded int
	edges := make(map[string][]Relationship, len(restaurants))

	for i := range restaurants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a := &restaurants[i]
		retained := make([]Relationship, 0, m.cfg.MaxRelationships)

		for j := range restaurants {
			if i == j {
				continue
			}
			pairs++

			rel := m.relate(a, &restaurants[j], vectors[a.ID], vectors[restaurants[j].ID], now)
			if rel.SimilarityScore <= m.cfg.MinSimilarity {
				discarded++
				continue
			}
			retained = append(retained, rel)
		}

		// Descending by similarity; ties break on ascending target id so
		// top-K truncation is stable across passes.
		sort.Slice(retained, func(x, y int) bool {
			if retained[x].SimilarityScore != retained[y].SimilarityScore {
				return retained[x].SimilarityScore > retained[y].SimilarityScore
			}
			return retained[x].RestaurantB < retained[y].RestaurantB
		})
		if len(retained) > m.cfg.MaxRelationships {
			retained = retained[:m.cfg.MaxRelationships]
		}
		edges[a.ID] = retained
	}

	metrics.MappingPassDuration.Observe(time.Since(start).Seconds())
	metrics.MappingPairsCompared.Add(float64(pairs))
	metrics.MappingPairsDiscarded.Add(float64(discarded))

	m.logger.Info().
		Int("restaurants", len(restaurants)).
		Int("pairs", pairs).
		Int("discarded", discarded).
		Dur("elapsed", time.Since(start)).
		Msg("corpus mapping pass complete")

	return newCache(edges), nil
}

// relate scores a single directed pair.
func (m *Mapper) relate(a, b *Restaurant, vecA, vecB []float64, now time.Time) Relationship {
	vibeSim := vibeSimilarity(vecA, vecB)
	cuisineSim := CuisineSimilarity(a.Cuisine, b.Cuisine)
	priceSim := PriceSimilarity(a.PriceRange, b.PriceRange)
	locProx := LocationProximity(a.Location, b.Location)

	composite := m.weights.Vibe*vibeSim +
		m.weights.Cuisine*cuisineSim +
		m.weights.Price*priceSim +
		m.weights.Location*locProx

	return Relationship{
		RestaurantA:       a.ID,
		RestaurantB:       b.ID,
		SimilarityScore:   composite,
		VibeSimilarity:    vibeSim,
		CuisineSimilarity: cuisineSim,
		PriceSimilarity:   priceSim,
		LocationProximity: locProx,
		Type:              classify(vibeSim, cuisineSim, priceSim, composite),
		Confidence:        pairConfidence(a, b, vecA, vecB),
		CreatedAt:         now,
	}
}

// vibeSimilarity is cosine similarity clamped to >= 0; an opposite vibe is
// treated as no signal, not a negative one. Either vector missing scores 0.
func vibeSimilarity(vecA, vecB []float64) float64 {
	if vecA == nil || vecB == nil {
		return 0.0
	}
	sim := vibe.Cosine(vecA, vecB)
	if sim < 0 {
		return 0.0
	}
	return sim
}

// PriceSimilarity scores price-tier distance. Tiers are integers 1-4
// ($ through $$$$).
func PriceSimilarity(a, b int) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.3
	default:
		return 0.0
	}
}

// LocationProximity scores geographic closeness: same neighborhood 1.0,
// same city 0.5, otherwise 0. Missing location data on either side is 0.
func LocationProximity(a, b *Location) float64 {
	if a == nil || b == nil {
		return 0.0
	}
	if a.Neighborhood != "" && a.Neighborhood == b.Neighborhood {
		return 1.0
	}
	if a.City != "" && a.City == b.City {
		return 0.5
	}
	return 0.0
}

// classify determines the relationship type, evaluated in priority order.
func classify(vibeSim, cuisineSim, priceSim, composite float64) RelationshipType {
	if composite > 0.7 {
		return TypeSimilar
	}
	// Different feel and cuisine at a compatible price point.
	if vibeSim < 0.5 && cuisineSim < 0.5 && priceSim > 0.7 {
		return TypeComplementary
	}
	if composite > 0.4 && composite < 0.7 {
		return TypeAlternative
	}
	return TypeRelated
}

// pairConfidence averages four completeness indicators for the pair.
func pairConfidence(a, b *Restaurant, vecA, vecB []float64) float64 {
	var total float64

	if vecA != nil && vecB != nil {
		total += 1.0
	} else {
		total += 0.3
	}
	if a.Cuisine != "" && b.Cuisine != "" {
		total += 1.0
	} else {
		total += 0.5
	}
	if a.Location != nil && b.Location != nil {
		total += 1.0
	} else {
		total += 0.5
	}
	if a.Rating > 0 && b.Rating > 0 {
		total += 1.0
	} else {
		total += 0.7
	}

	return total / 4
}

// VibeClusters groups restaurants by their highest-scoring primary vibe and
// drops clusters smaller than minClusterSize. Restaurants without a vibe
// profile are excluded. Exact score ties pick the lexicographically smallest
// vibe token, so cluster assignment is deterministic.
func (m *Mapper) VibeClusters(restaurants []Restaurant, minClusterSize int) map[string][]string {
	clusters := make(map[string][]string)
	for i := range restaurants {
		top, ok := restaurants[i].VibeProfile.TopPrimaryVibe()
		if !ok {
			continue
		}
		clusters[top] = append(clusters[top], restaurants[i].ID)
	}

	for name, ids := range clusters {
		if len(ids) < minClusterSize {
			delete(clusters, name)
		}
	}
	return clusters
}
