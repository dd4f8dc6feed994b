// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/taste"
	"github.com/tomtom215/tastegraph/internal/vibe"
)

// SaveVibeProfile stores a restaurant's vibe profile.
func (s *Store) SaveVibeProfile(_ context.Context, restaurantID string, p *vibe.Profile) error {
	if restaurantID == "" {
		return fmt.Errorf("restaurant id is required")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal vibe profile: %w", err)
	}
	return s.setJSON(vibeKeyPrefix+restaurantID, data)
}

// GetVibeProfile retrieves a restaurant's vibe profile. Returns ErrNotFound
// when the restaurant has never been extracted.
func (s *Store) GetVibeProfile(_ context.Context, restaurantID string) (*vibe.Profile, error) {
	data, err := s.getJSON(vibeKeyPrefix + restaurantID)
	if err != nil {
		return nil, err
	}
	var p vibe.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal vibe profile: %w", err)
	}
	return &p, nil
}

// SaveTasteProfile stores a user's taste profile, keyed by its UserID.
func (s *Store) SaveTasteProfile(_ context.Context, p *taste.Profile) error {
	if p == nil || p.UserID == "" {
		return fmt.Errorf("taste profile with user id is required")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal taste profile: %w", err)
	}
	return s.setJSON(tasteKeyPrefix+p.UserID, data)
}

// GetTasteProfile retrieves a user's taste profile. Returns ErrNotFound for
// unknown users.
func (s *Store) GetTasteProfile(_ context.Context, userID string) (*taste.Profile, error) {
	data, err := s.getJSON(tasteKeyPrefix + userID)
	if err != nil {
		return nil, err
	}
	var p taste.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal taste profile: %w", err)
	}
	return &p, nil
}

// LogInteraction appends one interaction to the user's raw log. The log is
// separate from the profile's bounded history and keeps everything.
func (s *Store) LogInteraction(ctx context.Context, userID string, in taste.Interaction) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	log, err := s.GetInteractions(ctx, userID)
	if err != nil && !IsNotFound(err) {
		return err
	}
	log = append(log, in)

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal interaction log: %w", err)
	}
	return s.setJSON(interactionKeyPrefix+userID, data)
}

// GetInteractions retrieves a user's full interaction log. Returns
// ErrNotFound when the user has never interacted.
func (s *Store) GetInteractions(_ context.Context, userID string) ([]taste.Interaction, error) {
	data, err := s.getJSON(interactionKeyPrefix + userID)
	if err != nil {
		return nil, err
	}
	var log []taste.Interaction
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("unmarshal interaction log: %w", err)
	}
	return log, nil
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
