// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/vibe"
)

func testProfile(vibes ...vibe.ScoredVibe) *vibe.Profile {
	return &vibe.Profile{
		PrimaryVibes:   vibes,
		EnergyLevel:    0.5,
		FormalityLevel: 0.5,
	}
}

func testCorpus() []Restaurant {
	casual := testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.9}, vibe.ScoredVibe{Vibe: "lively", Score: 0.7})
	upscale := testProfile(vibe.ScoredVibe{Vibe: "upscale", Score: 0.9}, vibe.ScoredVibe{Vibe: "romantic", Score: 0.8})

	return []Restaurant{
		{
			ID: "r1", Cuisine: "italian", PriceRange: 2, Rating: 4.2,
			Location:    &Location{City: "Portland", Neighborhood: "Pearl District"},
			VibeProfile: casual,
		},
		{
			ID: "r2", Cuisine: "italian", PriceRange: 2, Rating: 4.5,
			Location:    &Location{City: "Portland", Neighborhood: "Pearl District"},
			VibeProfile: casual,
		},
		{
			ID: "r3", Cuisine: "french", PriceRange: 4, Rating: 4.7,
			Location:    &Location{City: "Portland", Neighborhood: "Hawthorne"},
			VibeProfile: upscale,
		},
		{
			ID: "r4", Cuisine: "thai", PriceRange: 1, Rating: 4.0,
			Location:    &Location{City: "Seattle", Neighborhood: "Capitol Hill"},
			VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.8}),
		},
	}
}

func newTestMapper(t *testing.T, cfg Config) *Mapper {
	t.Helper()
	m, err := NewMapper(cfg, vibe.DefaultTaxonomy(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewMapper() error = %v", err)
	}
	return m
}

func TestNewMapper_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero max relationships", cfg: Config{MaxRelationships: 0, Weights: DefaultConfig().Weights}},
		{name: "negative weight", cfg: Config{MaxRelationships: 5, Weights: ComponentWeights{Vibe: -1}}},
		{name: "all-zero weights", cfg: Config{MaxRelationships: 5}},
		{name: "threshold out of range", cfg: Config{MaxRelationships: 5, MinSimilarity: 1.5, Weights: DefaultConfig().Weights}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper(tt.cfg, nil, zerolog.Nop()); err == nil {
				t.Error("NewMapper() expected error, got nil")
			}
		})
	}
}

func TestMapRelationships_IdenticalRestaurantsAreSimilar(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())
	cache, err := m.MapRelationships(context.Background(), testCorpus())
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}

	rels := cache.Relationships("r1")
	if len(rels) == 0 {
		t.Fatal("expected relationships for r1")
	}
	best := rels[0]
	if best.RestaurantB != "r2" {
		t.Errorf("best match = %q, want r2", best.RestaurantB)
	}
	if best.Type != TypeSimilar {
		t.Errorf("relationship type = %v, want similar", best.Type)
	}
	if best.SimilarityScore <= 0.7 {
		t.Errorf("similarity = %f, want > 0.7", best.SimilarityScore)
	}
	if best.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0 with complete data", best.Confidence)
	}
}

func TestMapRelationships_SortedAndCapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRelationships = 2
	cfg.MinSimilarity = 0.0
	m := newTestMapper(t, cfg)

	// Build a corpus large enough to exceed the cap.
	corpus := make([]Restaurant, 0, 8)
	for i := 0; i < 8; i++ {
		corpus = append(corpus, Restaurant{
			ID: fmt.Sprintf("r%d", i), Cuisine: "italian", PriceRange: 2,
			Location:    &Location{City: "Portland", Neighborhood: "Pearl District"},
			VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.8}),
		})
	}

	cache, err := m.MapRelationships(context.Background(), corpus)
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}

	for _, id := range cache.Restaurants() {
		rels := cache.Relationships(id)
		if len(rels) > cfg.MaxRelationships {
			t.Errorf("restaurant %s has %d relationships, cap is %d", id, len(rels), cfg.MaxRelationships)
		}
		for i := 1; i < len(rels); i++ {
			if rels[i].SimilarityScore > rels[i-1].SimilarityScore {
				t.Errorf("relationships for %s not sorted descending at index %d", id, i)
			}
		}
	}
}

func TestMapRelationships_TieBreakOnTargetID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRelationships = 2
	cfg.MinSimilarity = 0.0
	m := newTestMapper(t, cfg)

	// All identical, so every pairwise score ties; retained targets must be
	// the lexicographically smallest ids.
	var corpus []Restaurant
	for _, id := range []string{"d", "b", "c", "a"} {
		corpus = append(corpus, Restaurant{
			ID: id, Cuisine: "italian", PriceRange: 2,
			VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.8}),
		})
	}

	cache, err := m.MapRelationships(context.Background(), corpus)
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}

	rels := cache.Relationships("d")
	if len(rels) != 2 {
		t.Fatalf("got %d relationships, want 2", len(rels))
	}
	if rels[0].RestaurantB != "a" || rels[1].RestaurantB != "b" {
		t.Errorf("tie-break order = %q, %q, want a, b", rels[0].RestaurantB, rels[1].RestaurantB)
	}
}

func TestMapRelationships_ThresholdDiscard(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())

	// Unrelated cuisines, far apart, disjoint vibes: composite below 0.3.
	corpus := []Restaurant{
		{
			ID: "a", Cuisine: "italian", PriceRange: 1,
			Location:    &Location{City: "Portland"},
			VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "calm", Score: 0.9}),
		},
		{
			ID: "b", Cuisine: "sushi", PriceRange: 4,
			Location:    &Location{City: "Austin"},
			VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "bustling", Score: 0.9}),
		},
	}

	cache, err := m.MapRelationships(context.Background(), corpus)
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}
	if rels := cache.Relationships("a"); len(rels) != 0 {
		t.Errorf("expected pair below threshold to be discarded, got %+v", rels)
	}
}

func TestMapRelationships_MissingVibeProfile(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())

	corpus := []Restaurant{
		{
			ID: "a", Cuisine: "italian", PriceRange: 2,
			Location: &Location{City: "Portland", Neighborhood: "Pearl District"},
			// No vibe profile: participates via cuisine/price/location only.
		},
		{
			ID: "b", Cuisine: "italian", PriceRange: 2,
			Location:    &Location{City: "Portland", Neighborhood: "Pearl District"},
			VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.8}),
		},
	}

	cache, err := m.MapRelationships(context.Background(), corpus)
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}

	rels := cache.Relationships("a")
	if len(rels) != 1 {
		t.Fatalf("got %d relationships, want 1", len(rels))
	}
	if rels[0].VibeSimilarity != 0 {
		t.Errorf("vibe similarity = %f, want 0 with missing profile", rels[0].VibeSimilarity)
	}
	// Cuisine 1.0, price 1.0, neighborhood 1.0: composite 0.25+0.15+0.2.
	want := 0.25 + 0.15 + 0.2
	if !floatNear(rels[0].SimilarityScore, want) {
		t.Errorf("similarity = %f, want %f", rels[0].SimilarityScore, want)
	}
	// Vibe completeness indicator degrades to 0.3.
	wantConf := (0.3 + 1.0 + 1.0 + 0.7) / 4
	if !floatNear(rels[0].Confidence, wantConf) {
		t.Errorf("confidence = %f, want %f", rels[0].Confidence, wantConf)
	}
}

func TestMapRelationships_MissingIDFails(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())
	_, err := m.MapRelationships(context.Background(), []Restaurant{{Cuisine: "italian"}})
	if err == nil {
		t.Error("expected error for restaurant without id")
	}
}

func TestMapRelationships_Deterministic(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())
	corpus := testCorpus()

	first, err := m.MapRelationships(context.Background(), corpus)
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}
	second, err := m.MapRelationships(context.Background(), corpus)
	if err != nil {
		t.Fatalf("MapRelationships() error = %v", err)
	}

	for _, id := range first.Restaurants() {
		a, b := first.Relationships(id), second.Relationships(id)
		if len(a) != len(b) {
			t.Fatalf("pass lengths differ for %s: %d vs %d", id, len(a), len(b))
		}
		for i := range a {
			if a[i].RestaurantB != b[i].RestaurantB || a[i].Type != b[i].Type ||
				a[i].SimilarityScore != b[i].SimilarityScore {
				t.Errorf("relationship %d for %s differs between passes", i, id)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name                           string
		vibeSim, cuisineSim, priceSim  float64
		composite                      float64
		want                           RelationshipType
	}{
		{name: "high composite is similar", vibeSim: 0.9, cuisineSim: 0.9, priceSim: 1.0, composite: 0.85, want: TypeSimilar},
		{name: "different feel compatible price is complementary", vibeSim: 0.2, cuisineSim: 0.1, priceSim: 1.0, composite: 0.35, want: TypeComplementary},
		{name: "moderate composite is alternative", vibeSim: 0.6, cuisineSim: 0.6, priceSim: 0.3, composite: 0.55, want: TypeAlternative},
		{name: "low everything is related", vibeSim: 0.3, cuisineSim: 0.2, priceSim: 0.3, composite: 0.35, want: TypeRelated},
		{name: "similar takes priority over complementary", vibeSim: 0.2, cuisineSim: 0.1, priceSim: 1.0, composite: 0.75, want: TypeSimilar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.vibeSim, tt.cuisineSim, tt.priceSim, tt.composite)
			if got != tt.want {
				t.Errorf("classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVibeClusters(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())

	corpus := []Restaurant{
		{ID: "a", VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.9})},
		{ID: "b", VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.8})},
		{ID: "c", VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "casual", Score: 0.7})},
		{ID: "d", VibeProfile: testProfile(vibe.ScoredVibe{Vibe: "romantic", Score: 0.9})},
		{ID: "e"}, // no profile, excluded
	}

	clusters := m.VibeClusters(corpus, 2)
	if got := len(clusters["casual"]); got != 3 {
		t.Errorf("casual cluster size = %d, want 3", got)
	}
	if _, ok := clusters["romantic"]; ok {
		t.Error("romantic cluster below min size should be dropped")
	}
}

func TestVibeClusters_TieBreak(t *testing.T) {
	m := newTestMapper(t, DefaultConfig())

	tied := &vibe.Profile{PrimaryVibes: []vibe.ScoredVibe{
		{Vibe: "rustic", Score: 0.8},
		{Vibe: "casual", Score: 0.8},
	}}
	corpus := []Restaurant{
		{ID: "a", VibeProfile: tied},
		{ID: "b", VibeProfile: tied},
	}

	clusters := m.VibeClusters(corpus, 1)
	if _, ok := clusters["casual"]; !ok {
		t.Errorf("tied top vibes must cluster under the lexicographically smallest token, got %v", clusters)
	}
}

func floatNear(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
