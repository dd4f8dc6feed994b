// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package extraction

import (
	"context"
	"sync"

	"github.com/tomtom215/tastegraph/internal/vibe"
)

// ExtractBatch extracts profiles for a corpus with bounded concurrency.
// Results align index-for-index with sources. One restaurant failing does
// not fail the batch: its slot gets the neutral fallback profile. The only
// batch-level error is context cancellation.
func (c *Client) ExtractBatch(ctx context.Context, sources []vibe.SourceData) ([]vibe.Profile, error) {
	profiles := make([]vibe.Profile, len(sources))
	sem := make(chan struct{}, c.cfg.Concurrency)

	var wg sync.WaitGroup
	var fallbacks int64
	var mu sync.Mutex

	for i := range sources {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			profile, err := c.Extract(ctx, sources[i])
			if err != nil {
				c.logger.Error().Err(err).
					Str("restaurant", sources[i].Name).
					Msg("extraction failed, using neutral profile")
				profile = c.ExtractNeutral(sources[i])
				mu.Lock()
				fallbacks++
				mu.Unlock()
			}
			profiles[i] = profile
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("restaurants", len(sources)).
		Int64("fallbacks", fallbacks).
		Msg("batch extraction complete")
	return profiles, nil
}
