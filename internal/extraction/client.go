// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/vibe"
)

// maxResponseBytes caps extraction response bodies. Anything larger than
// this is not a payload we want to parse.
const maxResponseBytes = 1 << 20

// statusError is a non-2xx upstream response. Retryability depends on the
// status code.
type statusError struct {
	code       int
	retryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("extraction service returned status %d", e.code)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// Client calls the vibe extraction service with retries, rate limiting and
// circuit breaking. Safe for concurrent use.
//
// The circuit breaker uses real time for its interval and timeout
// calculations. Tests should exercise retry behavior through the HTTP layer
// rather than by forcing breaker state.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[vibe.ExtractionPayload]
	limiter *rate.Limiter
	tax     vibe.Taxonomy
	logger  zerolog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewClient creates an extraction client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, tax vibe.Taxonomy, logger zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	componentLogger := logger.With().Str("component", "extraction").Logger()

	breaker := gobreaker.NewCircuitBreaker[vibe.ExtractionPayload](gobreaker.Settings{
		Name:        "vibe-extraction",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		tax:     tax,
		logger:  componentLogger,
		now:     time.Now,
	}, nil
}

// Extract requests a vibe profile for one restaurant. Retryable upstream
// failures back off per the retry policy; unparseable payloads fall back to
// the neutral profile instead of failing.
func (c *Client) Extract(ctx context.Context, src vibe.SourceData) (vibe.Profile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return vibe.Profile{}, err
	}

	payload, err := c.extractWithRetry(ctx, src)
	if err != nil {
		return vibe.Profile{}, fmt.Errorf("extracting vibes for %q: %w", src.Name, err)
	}

	return vibe.NewProfile(payload, src, c.tax, c.now().UTC()), nil
}

// ExtractNeutral produces the neutral fallback profile for a restaurant
// whose extraction failed permanently.
func (c *Client) ExtractNeutral(src vibe.SourceData) vibe.Profile {
	metrics.ExtractionFallbacks.Inc()
	return vibe.NewProfile(vibe.NeutralPayload(), src, c.tax, c.now().UTC())
}

// extractWithRetry runs attempts with exponential backoff. The backoff wait
// is cancellable; a 429 Retry-After header overrides the computed delay.
func (c *Client) extractWithRetry(ctx context.Context, src vibe.SourceData) (vibe.ExtractionPayload, error) {
	var lastErr error
	delay := c.cfg.Retry.MinBackoff

	for attempt := 0; attempt < c.cfg.Retry.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return vibe.ExtractionPayload{}, ctx.Err()
		}
		if attempt > 0 {
			metrics.ExtractionRetries.Inc()
		}

		payload, err := c.attempt(ctx, src)
		if err == nil {
			return payload, nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.cfg.Retry.MaxAttempts-1 {
			break
		}

		wait := delay
		var se *statusError
		if errors.As(err, &se) && se.retryAfter > 0 {
			wait = se.retryAfter
		}

		c.logger.Warn().Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", c.cfg.Retry.MaxAttempts).
			Dur("delay", wait).
			Str("restaurant", src.Name).
			Msg("extraction retry")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return vibe.ExtractionPayload{}, ctx.Err()
		}

		delay *= 2
		if delay > c.cfg.Retry.MaxBackoff {
			delay = c.cfg.Retry.MaxBackoff
		}
	}

	return vibe.ExtractionPayload{}, lastErr
}

// attempt performs one HTTP call through the circuit breaker.
func (c *Client) attempt(ctx context.Context, src vibe.SourceData) (vibe.ExtractionPayload, error) {
	start := c.now()
	payload, err := c.breaker.Execute(func() (vibe.ExtractionPayload, error) {
		return c.doRequest(ctx, src)
	})
	metrics.RecordExtraction(time.Since(start), classifyError(err))
	return payload, err
}

// doRequest performs the raw extraction HTTP exchange. A 2xx response with
// an unparseable body resolves to the neutral payload, not an error.
func (c *Client) doRequest(ctx context.Context, src vibe.SourceData) (vibe.ExtractionPayload, error) {
	body, err := json.Marshal(src)
	if err != nil {
		return vibe.ExtractionPayload{}, fmt.Errorf("encoding source data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return vibe.ExtractionPayload{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return vibe.ExtractionPayload{}, fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is not actionable

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes)) //nolint:errcheck // draining for connection reuse
		se := &statusError{code: resp.StatusCode}
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
				se.retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return vibe.ExtractionPayload{}, se
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return vibe.ExtractionPayload{}, fmt.Errorf("reading response: %w", err)
	}

	var payload vibe.ExtractionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logger.Warn().Err(err).
			Str("restaurant", src.Name).
			Msg("unparseable extraction output, falling back to neutral profile")
		metrics.ExtractionFallbacks.Inc()
		return vibe.NeutralPayload(), nil
	}

	return payload, nil
}

// retryable reports whether an attempt error is worth another try. Circuit
// breaker rejections are not: the breaker exists to shed load.
func retryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Transport-level failures are retryable.
	return true
}

// classifyError maps an attempt error to a metrics label. Empty for success.
func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	default:
		var se *statusError
		if errors.As(err, &se) {
			if se.code == http.StatusTooManyRequests {
				return "rate_limit"
			}
			return "status"
		}
		return "transport"
	}
}
