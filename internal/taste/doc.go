// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package taste manages per-user taste profiles and scores restaurants
// against them.
//
// # Profiles
//
// A Profile is created once from an initial snapshot (explicit preferences
// plus optional interaction history) and then mutated by UpdateProfile as
// interactions arrive. Vibe preferences are learned incrementally: visits
// nudge preferred vibes up slightly, high ratings more, bookmarks most, and
// low ratings feed the avoided map instead. Preferences that go thirty days
// without reinforcement decay, and entries that fall below the 0.1 floor are
// deleted rather than kept at zero.
//
// Profiles follow a single-writer discipline. The engine provides no
// internal locking; callers must serialize updates to the same user's
// profile.
//
// # Matching
//
// CalculateMatch scores one (profile, restaurant, context) triple across
// four components - vibe alignment, cuisine match, price match and context
// fit - and combines them into a composite in [0, 1] with a human-readable
// explanation map. Explanations are advisory text for downstream UI; they
// never feed back into scoring. Missing data degrades each component to its
// documented neutral value (0.5) instead of failing, so batch scoring is
// never aborted by one sparse record.
package taste
