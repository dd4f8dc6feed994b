// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package extraction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/vibe"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Retry = RetryPolicy{
		MaxAttempts: 3,
		MinBackoff:  time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	}
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000

	c, err := NewClient(cfg, vibe.DefaultTaxonomy(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestClientConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.Retry.MaxAttempts = 0 }, wantErr: true},
		{name: "zero min backoff", mutate: func(c *Config) { c.Retry.MinBackoff = 0 }, wantErr: true},
		{
			name:    "max backoff below min",
			mutate:  func(c *Config) { c.Retry.MaxBackoff = c.Retry.MinBackoff - 1 },
			wantErr: true,
		},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit = 0 }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/extract" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"primary_vibes": [{"vibe": "romantic", "score": 0.9}],
			"secondary_vibes": [{"vibe": "intimate", "score": 0.6}],
			"energy_level": 0.3,
			"formality_level": 0.8
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	profile, err := c.Extract(context.Background(), vibe.SourceData{
		Name:        "Chez Test",
		Cuisine:     "french",
		Description: "candlelit bistro",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(profile.PrimaryVibes) != 1 || profile.PrimaryVibes[0].Vibe != "romantic" {
		t.Errorf("PrimaryVibes = %v, want single romantic", profile.PrimaryVibes)
	}
	if profile.EnergyLevel != 0.3 || profile.FormalityLevel != 0.8 {
		t.Errorf("levels = %v/%v, want 0.3/0.8", profile.EnergyLevel, profile.FormalityLevel)
	}
}

func TestExtractRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"primary_vibes": [{"vibe": "casual", "score": 0.7}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	profile, err := c.Extract(context.Background(), vibe.SourceData{Name: "Flaky Diner"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3", got)
	}
	if len(profile.PrimaryVibes) != 1 || profile.PrimaryVibes[0].Vibe != "casual" {
		t.Errorf("PrimaryVibes = %v, want single casual", profile.PrimaryVibes)
	}
}

func TestExtractDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Extract(context.Background(), vibe.SourceData{Name: "r"}); err == nil {
		t.Fatal("Extract() expected error for 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestExtractGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Extract(context.Background(), vibe.SourceData{Name: "r"}); err == nil {
		t.Fatal("Extract() expected error after exhausting retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3", got)
	}
}

func TestExtractMalformedPayloadFallsBackToNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`this is not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	profile, err := c.Extract(context.Background(), vibe.SourceData{Name: "Mystery Spot"})
	if err != nil {
		t.Fatalf("Extract() error = %v, want neutral fallback", err)
	}

	if len(profile.PrimaryVibes) != 1 || profile.PrimaryVibes[0].Vibe != vibe.NeutralVibe {
		t.Errorf("PrimaryVibes = %v, want neutral %q", profile.PrimaryVibes, vibe.NeutralVibe)
	}
	if profile.PrimaryVibes[0].Score != vibe.NeutralScore {
		t.Errorf("neutral score = %v, want %v", profile.PrimaryVibes[0].Score, vibe.NeutralScore)
	}
}

func TestExtractContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Extract(ctx, vibe.SourceData{Name: "r"}); err == nil {
		t.Fatal("Extract() expected error for canceled context")
	}
}

func TestExtractNeutral(t *testing.T) {
	c := newTestClient(t, "http://localhost:0")
	profile := c.ExtractNeutral(vibe.SourceData{Name: "Fallback Cafe", Description: "text"})

	if len(profile.PrimaryVibes) != 1 || profile.PrimaryVibes[0].Vibe != vibe.NeutralVibe {
		t.Errorf("PrimaryVibes = %v, want neutral", profile.PrimaryVibes)
	}
	if profile.EnergyLevel != 0.5 || profile.FormalityLevel != 0.5 {
		t.Errorf("levels = %v/%v, want 0.5/0.5", profile.EnergyLevel, profile.FormalityLevel)
	}
}
