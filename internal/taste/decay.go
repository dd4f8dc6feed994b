// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

import "time"

// applyDecay multiplies the strength of every vibe not reinforced within the
// decay window by the decay rate, identically for preferred and avoided
// maps. Entries falling below the minimum strength are deleted, never
// retained at zero.
func (e *Engine) applyDecay(p *Profile, now time.Time) {
	cutoff := now.Add(-e.cfg.DecayWindow)

	reinforced := make(map[string]struct{})
	for i := range p.InteractionHistory {
		if p.InteractionHistory[i].Timestamp.After(cutoff) {
			for _, v := range p.InteractionHistory[i].Vibes {
				reinforced[v] = struct{}{}
			}
		}
	}

	decayMap(p.PreferredVibes, reinforced, e.cfg.DecayRate, e.cfg.MinStrength)
	decayMap(p.AvoidedVibes, reinforced, e.cfg.DecayRate, e.cfg.MinStrength)
}

func decayMap(m map[string]float64, reinforced map[string]struct{}, rate, floor float64) {
	for vibe, strength := range m {
		if _, ok := reinforced[vibe]; ok {
			continue
		}
		strength *= rate
		if strength < floor {
			delete(m, vibe)
			continue
		}
		m[vibe] = strength
	}
}
