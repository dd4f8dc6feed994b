// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/vibe"
)

// InteractionType classifies user-restaurant interactions for preference
// learning.
type InteractionType int

const (
	// InteractionVisit is an implicit positive signal.
	InteractionVisit InteractionType = iota
	// InteractionRating carries an explicit 1-5 rating.
	InteractionRating
	// InteractionBookmark is a strong positive signal.
	InteractionBookmark
)

// String returns the wire name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionVisit:
		return "visit"
	case InteractionRating:
		return "rating"
	case InteractionBookmark:
		return "bookmark"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its string name.
func (t InteractionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the string name back into the typed constant.
func (t *InteractionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "visit":
		*t = InteractionVisit
	case "rating":
		*t = InteractionRating
	case "bookmark":
		*t = InteractionBookmark
	default:
		return fmt.Errorf("unknown interaction type %q", s)
	}
	return nil
}

// DiningStyle is the user's typical social dining setting.
type DiningStyle int

const (
	// StyleCouples is the default dining style.
	StyleCouples DiningStyle = iota
	// StyleSolo marks users who mostly dine alone.
	StyleSolo
	// StyleGroups marks users who mostly dine in groups.
	StyleGroups
	// StyleFamily marks users who mostly dine with family.
	StyleFamily
)

// String returns the wire name for the dining style.
func (s DiningStyle) String() string {
	switch s {
	case StyleSolo:
		return "solo"
	case StyleCouples:
		return "couples"
	case StyleGroups:
		return "groups"
	case StyleFamily:
		return "family"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the style as its string name.
func (s DiningStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the string name back into the typed constant.
func (s *DiningStyle) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "solo":
		*s = StyleSolo
	case "couples":
		*s = StyleCouples
	case "groups":
		*s = StyleGroups
	case "family":
		*s = StyleFamily
	default:
		return fmt.Errorf("unknown dining style %q", name)
	}
	return nil
}

// Interaction is one user-restaurant event. Rating 0 means unrated; the
// engine treats missing ratings as neutral when deriving cuisine weight.
type Interaction struct {
	// ID is server-assigned on update, never supplied by callers.
	ID string `json:"id,omitempty"`

	RestaurantID string          `json:"restaurant_id"`
	Type         InteractionType `json:"type"`

	// Rating is 1-5; 0 when the interaction carries no rating.
	Rating int `json:"rating,omitempty"`

	Cuisine    string `json:"cuisine,omitempty"`
	PriceRange int    `json:"price_range,omitempty"`

	// Vibes are the tokens associated with the restaurant at interaction
	// time; they drive preference reinforcement.
	Vibes []string `json:"vibes,omitempty"`

	// Timestamp is server-assigned on update.
	Timestamp time.Time `json:"timestamp"`
}

// Profile is a user's learned preference state.
type Profile struct {
	UserID string `json:"user_id"`

	// PreferredVibes and AvoidedVibes map vibe token -> strength in [0, 1].
	// After decay both maps only contain entries with strength >= 0.1.
	PreferredVibes map[string]float64 `json:"preferred_vibes"`
	AvoidedVibes   map[string]float64 `json:"avoided_vibes"`

	// CuisinePreferences maps cuisine -> affinity; normalized to [0, 1] at
	// creation time, then updated incrementally without re-normalization.
	CuisinePreferences map[string]float64 `json:"cuisine_preferences"`

	// PriceSensitivity is 0 (price-insensitive) to 1 (very sensitive).
	PriceSensitivity float64 `json:"price_sensitivity"`

	// AdventureScore proxies cuisine diversity, 0 conservative to 1
	// adventurous.
	AdventureScore float64 `json:"adventure_score"`

	SocialDiningStyle DiningStyle `json:"social_dining_style"`

	// ContextualPreferences is free-form, keyed by context dimension. It is
	// carried for downstream consumers and not interpreted by the engine.
	ContextualPreferences map[string]map[string]float64 `json:"contextual_preferences,omitempty"`

	// InteractionHistory holds the most recent interactions, oldest first,
	// capped at the engine's history limit.
	InteractionHistory []Interaction `json:"interaction_history"`

	LastUpdated time.Time `json:"last_updated"`
}

// Restaurant is the candidate input for match scoring.
type Restaurant struct {
	ID          string        `json:"id"`
	Cuisine     string        `json:"cuisine"`
	PriceRange  int           `json:"price_range"`
	Rating      float64       `json:"rating,omitempty"`
	VibeProfile *vibe.Profile `json:"vibe_profile,omitempty"`
}

// Match is the ephemeral result of scoring one (profile, restaurant,
// context) triple. It is never persisted by the engine.
type Match struct {
	RestaurantID string `json:"restaurant_id"`

	// MatchScore is the weighted composite of the four components, in [0, 1].
	MatchScore float64 `json:"match_score"`

	VibeAlignment float64 `json:"vibe_alignment"`
	CuisineMatch  float64 `json:"cuisine_match"`
	PriceMatch    float64 `json:"price_match"`
	ContextScore  float64 `json:"context_score"`

	// Explanation maps component -> short rationale for downstream UI.
	// It never feeds back into ranking.
	Explanation map[string]string `json:"explanation"`
}

// Context carries the optional situational dimensions for match scoring.
// Zero-valued dimensions are omitted from the context score, not defaulted.
type Context struct {
	// TimeOfDay is one of breakfast, lunch, dinner, late_night.
	TimeOfDay string `json:"time_of_day,omitempty"`

	// Weather is a coarse condition, e.g. rain, snow, cold, sunny.
	Weather string `json:"weather,omitempty"`

	// Occasion is one of date, business, family, celebration, casual.
	Occasion string `json:"occasion,omitempty"`

	// GroupSize is the party size; 0 means unspecified.
	GroupSize int `json:"group_size,omitempty"`
}

// UserData is the initial snapshot from which a profile is created.
type UserData struct {
	// Explicit preferences, merged with history-derived signal.
	PreferredVibes     map[string]float64 `json:"preferred_vibes,omitempty"`
	AvoidedVibes       map[string]float64 `json:"avoided_vibes,omitempty"`
	CuisinePreferences map[string]float64 `json:"cuisine_preferences,omitempty"`

	// PriceSensitivity and AdventureScore override derivation when set.
	PriceSensitivity *float64 `json:"price_sensitivity,omitempty"`
	AdventureScore   *float64 `json:"adventure_score,omitempty"`

	SocialDiningStyle     DiningStyle                   `json:"social_dining_style,omitempty"`
	ContextualPreferences map[string]map[string]float64 `json:"contextual_preferences,omitempty"`

	// History is the optional prior interaction record.
	History []Interaction `json:"history,omitempty"`
}
