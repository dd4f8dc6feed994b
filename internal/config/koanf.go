// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tastegraph/config.yaml",
	"/etc/tastegraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file: CONFIG_PATH first, then the
// default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment variables never
// pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Mapper mappings
		"graph_max_relationships": "graph.max_relationships",
		"graph_min_similarity":    "graph.min_similarity",
		"graph_vibe_weight":       "graph.weights.vibe",
		"graph_cuisine_weight":    "graph.weights.cuisine",
		"graph_price_weight":      "graph.weights.price",
		"graph_location_weight":   "graph.weights.location",

		// Taste engine mappings
		"taste_decay_rate":     "taste.decay_rate",
		"taste_decay_window":   "taste.decay_window",
		"taste_history_limit":  "taste.history_limit",
		"taste_min_strength":   "taste.min_strength",
		"taste_vibe_weight":    "taste.weights.vibe",
		"taste_cuisine_weight": "taste.weights.cuisine",
		"taste_price_weight":   "taste.weights.price",
		"taste_context_weight": "taste.weights.context",

		// Extraction mappings
		"extraction_url":               "extraction.base_url",
		"extraction_timeout":           "extraction.timeout",
		"extraction_retry_attempts":    "extraction.retry.max_attempts",
		"extraction_retry_min_backoff": "extraction.retry.min_backoff",
		"extraction_retry_max_backoff": "extraction.retry.max_backoff",
		"extraction_rate_limit":        "extraction.rate_limit",
		"extraction_rate_burst":        "extraction.rate_burst",
		"extraction_concurrency":       "extraction.concurrency",

		// Store mappings
		"store_path":        "store.path",
		"store_sync_writes": "store.sync_writes",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
