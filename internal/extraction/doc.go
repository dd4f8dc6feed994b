// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package extraction calls the external vibe extraction service and converts
its output into validated vibe profiles.

The extraction collaborator receives restaurant source data (name, cuisine,
price range, description, reviews) and returns scored vibe tokens. This
package owns the resilience around that call:

  - Exponential backoff retries with a configurable retry policy
  - Circuit breaker (sony/gobreaker) to stop hammering a failing upstream
  - Client-side rate limiting (golang.org/x/time/rate)
  - Neutral-profile fallback when the upstream returns unparseable output

# Failure Semantics

Malformed extraction output is not an error: the client substitutes the
neutral payload and produces a low-signal profile, so a flaky upstream
degrades match quality instead of halting ingestion. Transport failures,
HTTP 5xx and 429 responses are retried per the retry policy; other HTTP
errors and an open circuit fail fast.

Batch extraction runs with bounded concurrency and never fails the whole
batch for one restaurant: failed items fall back to the neutral profile and
the failure is logged and counted.

# Usage

	client, err := extraction.NewClient(cfg, taxonomy, logger)
	if err != nil {
	    return err
	}
	profile, err := client.Extract(ctx, src)
*/
package extraction
