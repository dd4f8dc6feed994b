// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the taste graph pipeline using the Prometheus client
library, exposing metrics for mapping passes, taste profile learning, vibe
extraction, and the key-value store.

# Available Metrics

Mapping Metrics:
  - mapping_pass_duration_seconds: Full relationship pass duration (histogram)
    Buckets: 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60
  - mapping_pairs_compared_total: Restaurant pairs scored (counter)
  - mapping_pairs_discarded_total: Pairs below the similarity threshold (counter)

Taste Engine Metrics:
  - taste_profile_updates_total: Profile updates (counter)
    Labels: interaction_type (visit, rating, bookmark)
  - taste_matches_computed_total: Match scores computed (counter)

Extraction Metrics:
  - extraction_duration_seconds: Extraction call latency (histogram)
  - extraction_errors_total: Extraction failures (counter)
    Labels: error_type (transport, status, circuit_open, rate_limit)
  - extraction_retries_total: Retry attempts (counter)
  - extraction_fallbacks_total: Neutral-profile fallbacks (counter)

Store Metrics:
  - store_operation_duration_seconds: KV operation latency (histogram)
    Labels: operation (get, set, delete, scan)
  - store_operation_errors_total: KV operation failures (counter)
    Labels: operation

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	import "github.com/prometheus/client_golang/prometheus/promhttp"

	http.Handle("/metrics", promhttp.Handler())

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent
use from multiple goroutines. The Prometheus client library handles
synchronization internally.

# Cardinality Management

Label values are limited to predefined constants: interaction types, store
operation names, and extraction error classes. Restaurant and user ids are
never used as labels.

# See Also

  - internal/graph: mapping pass instrumentation
  - internal/taste: profile update and match instrumentation
  - internal/extraction: extraction call instrumentation
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
