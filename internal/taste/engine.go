// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

// Reinforcement step sizes per interaction type. All strengths cap at 1.0.
const (
	visitReinforcement    = 0.05
	ratingReinforcement   = 0.10
	bookmarkReinforcement = 0.15

	positiveRating = 4
	negativeRating = 2
)

// adventureDiversityCeiling is the distinct cuisine count at which the
// derived adventure score reaches 1.0.
const adventureDiversityCeiling = 20

// Engine builds, updates and matches user taste profiles. It holds no
// per-user state; profiles are passed in and out. The engine itself is safe
// for concurrent use, but a given profile must only be mutated by one caller
// at a time.
type Engine struct {
	cfg     Config
	weights MatchWeights
	logger  zerolog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewEngine creates a taste engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		weights: cfg.Weights.normalized(),
		logger:  logger.With().Str("component", "taste").Logger(),
		now:     time.Now,
	}, nil
}

// CreateProfile derives a new taste profile from an initial snapshot.
// userID must be non-empty; everything else may be missing and derives to
// documented defaults.
func (e *Engine) CreateProfile(userID string, data UserData) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	p := &Profile{
		UserID:                userID,
		PreferredVibes:        e.extractVibeSignal(data.PreferredVibes, data.History, true),
		AvoidedVibes:          e.extractVibeSignal(data.AvoidedVibes, data.History, false),
		CuisinePreferences:    extractCuisinePreferences(data.CuisinePreferences, data.History),
		PriceSensitivity:      derivePriceSensitivity(data),
		AdventureScore:        deriveAdventureScore(data),
		SocialDiningStyle:     data.SocialDiningStyle,
		ContextualPreferences: data.ContextualPreferences,
		InteractionHistory:    []Interaction{},
		LastUpdated:           e.now().UTC(),
	}

	e.logger.Debug().
		Str("user_id", userID).
		Int("preferred_vibes", len(p.PreferredVibes)).
		Int("cuisines", len(p.CuisinePreferences)).
		Msg("created taste profile")
	return p, nil
}

// UpdateProfile applies one interaction to a profile: reinforce preferences
// by interaction type, append to history (with server-assigned id and
// timestamp), truncate to the history limit, decay unreinforced preferences
// and refresh LastUpdated. The profile is mutated in place.
func (e *Engine) UpdateProfile(p *Profile, interaction Interaction) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	now := e.now().UTC()
	interaction.ID = uuid.NewString()
	interaction.Timestamp = now

	switch interaction.Type {
	case InteractionVisit:
		e.reinforcePreferred(p, interaction.Vibes, visitReinforcement)
	case InteractionRating:
		e.updateFromRating(p, interaction)
	case InteractionBookmark:
		e.reinforcePreferred(p, interaction.Vibes, bookmarkReinforcement)
	default:
		return fmt.Errorf("unknown interaction type %d", interaction.Type)
	}

	p.InteractionHistory = append(p.InteractionHistory, interaction)
	if excess := len(p.InteractionHistory) - e.cfg.HistoryLimit; excess > 0 {
		p.InteractionHistory = p.InteractionHistory[excess:]
	}

	e.applyDecay(p, now)
	p.LastUpdated = now

	metrics.ProfileUpdates.WithLabelValues(interaction.Type.String()).Inc()
	return nil
}

// reinforcePreferred bumps preferred-vibe strengths by step, capped at 1.0.
func (e *Engine) reinforcePreferred(p *Profile, vibes []string, step float64) {
	if p.PreferredVibes == nil {
		p.PreferredVibes = make(map[string]float64)
	}
	for _, v := range vibes {
		p.PreferredVibes[v] = capAt1(p.PreferredVibes[v] + step)
	}
}

// updateFromRating reinforces preferred or avoided vibes depending on the
// rating, and nudges the cuisine preference by (rating-3)/10.
func (e *Engine) updateFromRating(p *Profile, in Interaction) {
	if in.Rating >= positiveRating {
		e.reinforcePreferred(p, in.Vibes, ratingReinforcement)
	} else if in.Rating > 0 && in.Rating <= negativeRating {
		if p.AvoidedVibes == nil {
			p.AvoidedVibes = make(map[string]float64)
		}
		for _, v := range in.Vibes {
			p.AvoidedVibes[v] = capAt1(p.AvoidedVibes[v] + ratingReinforcement)
		}
	}

	cuisine := strings.ToLower(in.Cuisine)
	if cuisine == "" {
		return
	}
	if p.CuisinePreferences == nil {
		p.CuisinePreferences = make(map[string]float64)
	}
	current, ok := p.CuisinePreferences[cuisine]
	if !ok {
		current = 0.5
	}
	nudge := float64(ratingOrNeutral(in.Rating)-3) / 10
	p.CuisinePreferences[cuisine] = clamp01(current + nudge)
}

// extractVibeSignal merges explicit preferences with history-derived
// reinforcement (+0.1 per qualifying interaction), then scales by the
// maximum so the strongest signal sits at 1.0. positive selects rating >= 4
// interactions; otherwise rating <= 2 feed the avoided signal.
func (e *Engine) extractVibeSignal(explicit map[string]float64, history []Interaction, positive bool) map[string]float64 {
	signal := make(map[string]float64, len(explicit))
	for vibe, strength := range explicit {
		signal[vibe] = strength
	}

	for i := range history {
		in := &history[i]
		if in.Rating == 0 {
			continue
		}
		if positive && in.Rating < positiveRating {
			continue
		}
		if !positive && in.Rating > negativeRating {
			continue
		}
		for _, v := range in.Vibes {
			signal[v] += 0.1
		}
	}

	if len(signal) == 0 {
		return signal
	}
	var max float64
	for _, s := range signal {
		if s > max {
			max = s
		}
	}
	if max > 0 {
		for v := range signal {
			signal[v] /= max
		}
	}
	return signal
}

// extractCuisinePreferences merges explicit affinities with history signal
// weighted by (rating-3)/2, then min-max normalizes to [0, 1] when the
// spread is non-degenerate.
func extractCuisinePreferences(explicit map[string]float64, history []Interaction) map[string]float64 {
	prefs := make(map[string]float64, len(explicit))
	for cuisine, affinity := range explicit {
		prefs[strings.ToLower(cuisine)] = affinity
	}

	for i := range history {
		cuisine := strings.ToLower(history[i].Cuisine)
		if cuisine == "" {
			continue
		}
		weight := float64(ratingOrNeutral(history[i].Rating)-3) / 2
		prefs[cuisine] += weight
	}

	if len(prefs) == 0 {
		return prefs
	}
	var min, max float64
	first := true
	for _, v := range prefs {
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max > min {
		for c, v := range prefs {
			prefs[c] = (v - min) / (max - min)
		}
	}
	return prefs
}

// deriveAdventureScore uses the explicit value when provided, otherwise the
// distinct cuisine count in history divided by the diversity ceiling.
func deriveAdventureScore(data UserData) float64 {
	if data.AdventureScore != nil {
		return clamp01(*data.AdventureScore)
	}

	cuisines := make(map[string]struct{})
	for i := range data.History {
		if c := strings.ToLower(data.History[i].Cuisine); c != "" {
			cuisines[c] = struct{}{}
		}
	}
	score := float64(len(cuisines)) / adventureDiversityCeiling
	if score > 1 {
		score = 1
	}
	return score
}

// derivePriceSensitivity uses the explicit value when provided, otherwise
// compares the mean rating of interactions above versus at-or-below the
// mean observed price tier. Higher ratings at lower prices indicate
// sensitivity. Defaults to 0.5 with insufficient data.
func derivePriceSensitivity(data UserData) float64 {
	if data.PriceSensitivity != nil {
		return clamp01(*data.PriceSensitivity)
	}

	type priced struct {
		price  int
		rating int
	}
	var samples []priced
	for i := range data.History {
		if data.History[i].PriceRange > 0 {
			samples = append(samples, priced{
				price:  data.History[i].PriceRange,
				rating: ratingOrNeutral(data.History[i].Rating),
			})
		}
	}
	if len(samples) == 0 {
		return 0.5
	}

	var priceSum float64
	for _, s := range samples {
		priceSum += float64(s.price)
	}
	avgPrice := priceSum / float64(len(samples))

	var highSum, lowSum float64
	var highN, lowN int
	for _, s := range samples {
		if float64(s.price) > avgPrice {
			highSum += float64(s.rating)
			highN++
		} else {
			lowSum += float64(s.rating)
			lowN++
		}
	}
	if highN == 0 || lowN == 0 {
		return 0.5
	}

	return clamp01((lowSum/float64(lowN)-highSum/float64(highN))/2 + 0.5)
}

// ratingOrNeutral maps an absent (zero) rating to the neutral midpoint.
func ratingOrNeutral(r int) int {
	if r == 0 {
		return 3
	}
	return r
}

func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
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
