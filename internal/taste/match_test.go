// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import (
	"errors"
	"testing"

	"github.com/tomtom215/tastegraph/internal/vibe"
)

func TestVibeAlignment(t *testing.T) {
	tests := []struct {
		name            string
		preferred       map[string]float64
		avoided         map[string]float64
		restaurantVibes map[string]float64
		want            float64
	}{
		{
			name:      "no restaurant vibes is neutral",
			preferred: map[string]float64{"romantic": 1.0},
			want:      0.5,
		},
		{
			name:            "no overlap is neutral",
			preferred:       map[string]float64{"romantic": 1.0},
			restaurantVibes: map[string]float64{"lively": 0.9},
			want:            0.5,
		},
		{
			name:            "preferred overlap scores high",
			preferred:       map[string]float64{"romantic": 1.0},
			restaurantVibes: map[string]float64{"romantic": 0.9},
			want:            0.95,
		},
		{
			name:            "avoided overlap scores low",
			avoided:         map[string]float64{"loud": 1.0},
			restaurantVibes: map[string]float64{"loud": 0.8},
			want:            0.1,
		},
		{
			name:            "mixed signals weighted by strength",
			preferred:       map[string]float64{"romantic": 1.0},
			avoided:         map[string]float64{"loud": 0.5},
			restaurantVibes: map[string]float64{"romantic": 1.0, "loud": 1.0},
			want:            (0.5/1.5 + 1) / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vibeAlignment(tt.preferred, tt.avoided, tt.restaurantVibes)
			inDelta(t, "vibeAlignment()", got, tt.want)
		})
	}
}

func TestCuisineMatch(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		cuisine string
		want    float64
	}{
		{
			name:    "direct preference",
			profile: Profile{CuisinePreferences: map[string]float64{"italian": 0.9}},
			cuisine: "Italian",
			want:    0.9,
		},
		{
			name:    "similar cuisine at a discount",
			profile: Profile{CuisinePreferences: map[string]float64{"japanese": 0.8}},
			cuisine: "thai",
			want:    0.64,
		},
		{
			name:    "novel cuisine for a cautious diner",
			profile: Profile{AdventureScore: 0},
			cuisine: "ethiopian",
			want:    0.3,
		},
		{
			name:    "novel cuisine for an adventurous diner",
			profile: Profile{AdventureScore: 1},
			cuisine: "ethiopian",
			want:    0.7,
		},
		{
			name:    "empty cuisine is neutral",
			profile: Profile{CuisinePreferences: map[string]float64{"italian": 0.9}},
			cuisine: "",
			want:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cuisineMatch(&tt.profile, tt.cuisine)
			inDelta(t, "cuisineMatch()", got, tt.want)
		})
	}
}

func TestPriceMatch(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity float64
		tier        int
		want        float64
	}{
		{name: "sensitive cheap", sensitivity: 0.9, tier: 1, want: 1.0},
		{name: "sensitive mid", sensitivity: 0.9, tier: 2, want: 0.7},
		{name: "sensitive expensive", sensitivity: 0.9, tier: 4, want: 0.1},
		{name: "insensitive expensive", sensitivity: 0.1, tier: 4, want: 1.0},
		{name: "insensitive cheap", sensitivity: 0.1, tier: 1, want: 0.85},
		{name: "moderate sweet spot", sensitivity: 0.5, tier: 2, want: 1.0},
		{name: "moderate cheap", sensitivity: 0.5, tier: 1, want: 0.8},
		{name: "moderate expensive", sensitivity: 0.5, tier: 4, want: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priceMatch(tt.sensitivity, tt.tier)
			inDelta(t, "priceMatch()", got, tt.want)
		})
	}
}

func TestContextScore(t *testing.T) {
	restaurantVibes := map[string]float64{
		"romantic": 0.9,
		"upscale":  0.3,
		"intimate": 0.8,
	}

	tests := []struct {
		name string
		ctx  *Context
		want float64
	}{
		{name: "nil context is neutral", ctx: nil, want: 0.5},
		{name: "empty context is neutral", ctx: &Context{}, want: 0.5},
		{
			name: "dinner",
			ctx:  &Context{TimeOfDay: "dinner"},
			want: (0.9 + 0.3 + 0) / 3,
		},
		{
			name: "rain selects cozy keywords",
			ctx:  &Context{Weather: "rain"},
			want: 0.8 / 4,
		},
		{
			name: "date occasion",
			ctx:  &Context{Occasion: "date"},
			want: (0.9 + 0.8 + 0.3) / 3,
		},
		{
			name: "unknown occasion falls back to casual",
			ctx:  &Context{Occasion: "heist"},
			want: 0,
		},
		{
			name: "party of two",
			ctx:  &Context{GroupSize: 2},
			want: (0.9 + 0.8 + 0) / 3,
		},
		{
			name: "dimensions are averaged",
			ctx:  &Context{TimeOfDay: "dinner", Occasion: "date"},
			want: ((0.9+0.3+0)/3 + (0.9+0.8+0.3)/3) / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contextScore(restaurantVibes, tt.ctx)
			inDelta(t, "contextScore()", got, tt.want)
		})
	}
}

func TestCalculateMatchMissingID(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	p := &Profile{UserID: "u1"}

	_, err := e.CalculateMatch(p, Restaurant{}, nil)
	if !errors.Is(err, ErrMissingRestaurantID) {
		t.Fatalf("CalculateMatch() error = %v, want ErrMissingRestaurantID", err)
	}
}

func TestCalculateMatchComposite(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	p := &Profile{
		UserID:             "u1",
		PreferredVibes:     map[string]float64{"romantic": 1.0},
		CuisinePreferences: map[string]float64{"italian": 0.8},
		PriceSensitivity:   0.5,
	}
	r := Restaurant{
		ID:         "r1",
		Cuisine:    "italian",
		PriceRange: 2,
		VibeProfile: &vibe.Profile{
			PrimaryVibes: []vibe.ScoredVibe{{Vibe: "romantic", Score: 0.9}},
		},
	}

	m, err := e.CalculateMatch(p, r, nil)
	if err != nil {
		t.Fatalf("CalculateMatch() error = %v", err)
	}

	inDelta(t, "VibeAlignment", m.VibeAlignment, 0.95)
	inDelta(t, "CuisineMatch", m.CuisineMatch, 0.8)
	inDelta(t, "PriceMatch", m.PriceMatch, 1.0)
	inDelta(t, "ContextScore", m.ContextScore, 0.5)

	want := 0.4*0.95 + 0.3*0.8 + 0.15*1.0 + 0.15*0.5
	inDelta(t, "MatchScore", m.MatchScore, want)
	if m.RestaurantID != "r1" {
		t.Errorf("RestaurantID = %q, want r1", m.RestaurantID)
	}
}

func TestCalculateMatchWithoutVibeProfile(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	p := &Profile{
		UserID:         "u1",
		PreferredVibes: map[string]float64{"romantic": 1.0},
	}

	m, err := e.CalculateMatch(p, Restaurant{ID: "r1", Cuisine: "italian", PriceRange: 2}, nil)
	if err != nil {
		t.Fatalf("CalculateMatch() error = %v", err)
	}

	if m.VibeAlignment != 0.5 {
		t.Errorf("VibeAlignment = %v, want exactly 0.5 for a restaurant without vibe data", m.VibeAlignment)
	}
}

func TestExplain(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	tests := []struct {
		name            string
		profile         Profile
		restaurant      Restaurant
		restaurantVibes map[string]float64
		match           Match
		wantKey         string
		want            string
	}{
		{
			name: "strong vibe alignment names shared vibes",
			profile: Profile{PreferredVibes: map[string]float64{
				"romantic": 1.0, "intimate": 1.0, "cozy": 1.0,
			}},
			restaurantVibes: map[string]float64{"romantic": 0.9, "intimate": 0.8, "cozy": 0.7},
			match:           Match{VibeAlignment: 0.9},
			wantKey:         "vibe",
			want:            "Perfect match for your love of cozy, intimate atmospheres",
		},
		{
			name:            "weak vibe alignment suggests adventure",
			profile:         Profile{AvoidedVibes: map[string]float64{"loud": 1.0}},
			restaurantVibes: map[string]float64{"loud": 1.0},
			match:           Match{VibeAlignment: 0.1},
			wantKey:         "vibe",
			want:            "Different from your usual preferences - might be an adventure!",
		},
		{
			name:       "favorite cuisine",
			profile:    Profile{CuisinePreferences: map[string]float64{"italian": 0.9}},
			restaurant: Restaurant{ID: "r1", Cuisine: "Italian"},
			match:      Match{CuisineMatch: 0.9},
			wantKey:    "cuisine",
			want:       "One of your favorite cuisines: Italian",
		},
		{
			name:       "familiar cuisine",
			profile:    Profile{CuisinePreferences: map[string]float64{"thai": 0.6}},
			restaurant: Restaurant{ID: "r1", Cuisine: "thai"},
			match:      Match{CuisineMatch: 0.6},
			wantKey:    "cuisine",
			want:       "You've enjoyed Thai before",
		},
		{
			name:    "price above usual range",
			profile: Profile{PriceSensitivity: 0.8},
			match:   Match{PriceMatch: 0.1},
			wantKey: "price",
			want:    "Higher than your usual price range",
		},
		{
			name:    "great value",
			profile: Profile{PriceSensitivity: 0.8},
			match:   Match{PriceMatch: 1.0},
			wantKey: "price",
			want:    "Great value in your price range",
		},
		{
			name:    "context fit",
			match:   Match{ContextScore: 0.8},
			wantKey: "context",
			want:    "Perfect for the occasion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.explain(&tt.profile, tt.restaurant, tt.restaurantVibes, tt.match)
			if got[tt.wantKey] != tt.want {
				t.Errorf("explanation[%q] = %q, want %q", tt.wantKey, got[tt.wantKey], tt.want)
			}
		})
	}
}

func TestExplainOmitsNeutralComponents(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	p := &Profile{
		UserID:           "u1",
		PriceSensitivity: 0.5,
	}

	got := e.explain(p, Restaurant{ID: "r1", Cuisine: "ethiopian"}, nil, Match{
		VibeAlignment: 0.5,
		CuisineMatch:  0.5,
		PriceMatch:    0.5,
		ContextScore:  0.5,
	})
	if len(got) != 0 {
		t.Errorf("expected no explanations for neutral components, got %v", got)
	}
}
