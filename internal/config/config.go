// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package config loads and validates the application configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. Struct defaults (each package's DefaultConfig)
//  2. YAML config file (config.yaml, /etc/tastegraph/config.yaml, or
//     CONFIG_PATH)
//  3. Environment variables (LOG_LEVEL, STORE_PATH, EXTRACTION_URL, ...)
package config

import (
	"fmt"

	"github.com/tomtom215/tastegraph/internal/extraction"
	"github.com/tomtom215/tastegraph/internal/graph"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/store"
	"github.com/tomtom215/tastegraph/internal/taste"
	"github.com/tomtom215/tastegraph/internal/vibe"
)

// Config is the root application configuration.
type Config struct {
	Logging    logging.Config    `json:"logging" koanf:"logging"`
	Graph      graph.Config      `json:"graph" koanf:"graph"`
	Taste      taste.Config      `json:"taste" koanf:"taste"`
	Extraction extraction.Config `json:"extraction" koanf:"extraction"`
	Store      store.Config      `json:"store" koanf:"store"`

	// Taxonomy overrides the built-in vibe taxonomy when set in the config
	// file (dimension name -> vibe tokens). Not settable via env var.
	Taxonomy map[string][]string `json:"taxonomy,omitempty" koanf:"taxonomy"`
}

// VibeTaxonomy returns the configured taxonomy, or the built-in default
// when the config file does not define one.
func (c *Config) VibeTaxonomy() vibe.Taxonomy {
	if len(c.Taxonomy) == 0 {
		return vibe.DefaultTaxonomy()
	}
	return vibe.Taxonomy(c.Taxonomy)
}

// defaultConfig returns a Config with every section at its package default.
// These defaults are applied first, then overridden by config file and env
// vars.
func defaultConfig() *Config {
	return &Config{
		Logging:    logging.DefaultConfig(),
		Graph:      graph.DefaultConfig(),
		Taste:      taste.DefaultConfig(),
		Extraction: extraction.DefaultConfig(),
		Store:      store.DefaultConfig(),
	}
}

// Validate checks every configuration section.
func (c *Config) Validate() error {
	if err := c.Graph.Validate(); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if err := c.Taste.Validate(); err != nil {
		return fmt.Errorf("taste: %w", err)
	}
	if err := c.Extraction.Validate(); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}
