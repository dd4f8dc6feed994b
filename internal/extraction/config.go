// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package extraction

import (
	"fmt"
	"time"
)

// RetryPolicy controls how extraction calls are retried. Backoff doubles
// from MinBackoff per attempt, capped at MaxBackoff.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int `json:"max_attempts" koanf:"max_attempts"`

	// MinBackoff is the delay before the first retry.
	MinBackoff time.Duration `json:"min_backoff" koanf:"min_backoff"`

	// MaxBackoff caps the exponential backoff delay.
	MaxBackoff time.Duration `json:"max_backoff" koanf:"max_backoff"`
}

// Config contains configuration for the extraction client.
type Config struct {
	// BaseURL is the extraction service endpoint, e.g. http://localhost:8090.
	BaseURL string `json:"base_url" koanf:"base_url"`

	// Timeout applies to each individual HTTP attempt.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`

	// Retry controls backoff behavior for retryable failures.
	Retry RetryPolicy `json:"retry" koanf:"retry"`

	// RateLimit is the sustained request rate toward the upstream, in
	// requests per second.
	RateLimit float64 `json:"rate_limit" koanf:"rate_limit"`

	// RateBurst is the rate limiter burst size.
	RateBurst int `json:"rate_burst" koanf:"rate_burst"`

	// Concurrency bounds parallel requests during batch extraction.
	Concurrency int `json:"concurrency" koanf:"concurrency"`
}

// DefaultConfig returns the default extraction client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8090",
		Timeout: 10 * time.Second,
		Retry: RetryPolicy{
			MaxAttempts: 3,
			MinBackoff:  time.Second,
			MaxBackoff:  30 * time.Second,
		},
		RateLimit:   10,
		RateBurst:   20,
		Concurrency: 4,
	}
}

// Validate checks configuration ranges.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.MinBackoff <= 0 {
		return fmt.Errorf("retry.min_backoff must be positive, got %v", c.Retry.MinBackoff)
	}
	if c.Retry.MaxBackoff < c.Retry.MinBackoff {
		return fmt.Errorf("retry.max_backoff must be at least min_backoff, got %v", c.Retry.MaxBackoff)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %f", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1, got %d", c.RateBurst)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
