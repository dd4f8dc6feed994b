// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Relationship Mapping Metrics
	MappingPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mapping_pass_duration_seconds",
			Help:    "Duration of full relationship mapping passes in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60}, // O(n^2) passes can take a while on large corpora
		},
	)

	MappingPairsCompared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mapping_pairs_compared_total",
			Help: "Total number of restaurant pairs scored during mapping",
		},
	)

	MappingPairsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mapping_pairs_discarded_total",
			Help: "Total number of pairs discarded below the similarity threshold",
		},
	)

	// Taste Engine Metrics
	ProfileUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_profile_updates_total",
			Help: "Total number of taste profile updates",
		},
		[]string{"interaction_type"}, // "visit", "rating", "bookmark"
	)

	MatchesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taste_matches_computed_total",
			Help: "Total number of match scores computed",
		},
	)

	// Vibe Extraction Metrics
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "Duration of vibe extraction calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ExtractionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_errors_total",
			Help: "Total number of vibe extraction errors",
		},
		[]string{"error_type"}, // "transport", "status", "circuit_open", "rate_limit"
	)

	ExtractionRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_retries_total",
			Help: "Total number of vibe extraction retry attempts",
		},
	)

	ExtractionFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_fallbacks_total",
			Help: "Total number of neutral-profile fallbacks for unparseable extraction output",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of key-value store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "get", "set", "delete", "scan"
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of key-value store operation errors",
		},
		[]string{"operation"},
	)
)

// RecordExtraction records one extraction attempt outcome. errorType is
// empty on success.
func RecordExtraction(duration time.Duration, errorType string) {
	ExtractionDuration.Observe(duration.Seconds())
	if errorType != "" {
		ExtractionErrors.WithLabelValues(errorType).Inc()
	}
}

// RecordStoreOperation records one store operation. Not-found lookups count
// as successes; only real failures increment the error counter.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}
