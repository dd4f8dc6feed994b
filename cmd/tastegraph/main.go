// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Tastegraph builds a relationship graph over a restaurant corpus.
//
// The pipeline: load the corpus, extract vibe profiles for restaurants that
// do not have one persisted yet, run a full relationship mapping pass, and
// persist the resulting graph. Each pass is authoritative: the persisted
// graph is replaced wholesale.
//
// # Usage
//
//	tastegraph -corpus restaurants.json
//
// With a local corpus and no extraction service:
//
//	tastegraph -corpus restaurants.json -skip-extraction
//
// Configuration comes from config.yaml and environment variables; see the
// internal/config package.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/config"
	"github.com/tomtom215/tastegraph/internal/extraction"
	"github.com/tomtom215/tastegraph/internal/graph"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/store"
	"github.com/tomtom215/tastegraph/internal/vibe"
)

// corpusRestaurant is the on-disk corpus record.
type corpusRestaurant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Cuisine     string          `json:"cuisine"`
	PriceRange  int             `json:"price_range"`
	Rating      float64         `json:"rating"`
	Location    *graph.Location `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Reviews     []string        `json:"reviews,omitempty"`
}

func main() {
	corpusPath := flag.String("corpus", "", "path to the restaurant corpus JSON file")
	skipExtraction := flag.Bool("skip-extraction", false, "use neutral profiles instead of calling the extraction service")
	flag.Parse()

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tastegraph -corpus restaurants.json [-skip-extraction]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet; the default logger applies.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewCorrelationID(ctx)

	if err := run(ctx, cfg, *corpusPath, *skipExtraction); err != nil {
		logging.Fatal().Err(err).Msg("pipeline failed")
	}
}

func run(ctx context.Context, cfg *config.Config, corpusPath string, skipExtraction bool) error {
	corpus, err := loadCorpus(corpusPath)
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Int("restaurants", len(corpus)).
		Str("corpus", corpusPath).
		Msg("corpus loaded")

	db, err := store.Open(cfg.Store, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	tax := cfg.VibeTaxonomy()
	client, err := extraction.NewClient(cfg.Extraction, tax, logging.Logger())
	if err != nil {
		return err
	}

	restaurants, err := resolveProfiles(ctx, db, client, corpus, skipExtraction)
	if err != nil {
		return err
	}

	mapper, err := graph.NewMapper(cfg.Graph, tax, logging.Logger())
	if err != nil {
		return err
	}

	cache, err := mapper.MapRelationships(ctx, restaurants)
	if err != nil {
		return err
	}

	rels := cache.All()
	if err := db.ReplaceRelationships(ctx, rels); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Int("restaurants", len(restaurants)).
		Int("relationships", len(rels)).
		Msg("taste graph persisted")
	return nil
}

// loadCorpus reads and decodes the corpus file.
func loadCorpus(path string) ([]corpusRestaurant, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator's flag
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	var corpus []corpusRestaurant
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}
	return corpus, nil
}

// resolveProfiles attaches a vibe profile to every corpus restaurant.
// Persisted profiles are reused; the rest are extracted (or neutral when
// extraction is skipped) and persisted for the next run.
func resolveProfiles(ctx context.Context, db *store.Store, client *extraction.Client, corpus []corpusRestaurant, skipExtraction bool) ([]graph.Restaurant, error) {
	restaurants := make([]graph.Restaurant, len(corpus))
	var missing []int

	for i, r := range corpus {
		restaurants[i] = graph.Restaurant{
			ID:         r.ID,
			Cuisine:    r.Cuisine,
			PriceRange: r.PriceRange,
			Rating:     r.Rating,
			Location:   r.Location,
		}

		profile, err := db.GetVibeProfile(ctx, r.ID)
		switch {
		case err == nil:
			restaurants[i].VibeProfile = profile
		case store.IsNotFound(err):
			missing = append(missing, i)
		default:
			return nil, err
		}
	}

	if len(missing) == 0 {
		return restaurants, nil
	}

	sources := make([]vibe.SourceData, len(missing))
	for j, i := range missing {
		sources[j] = vibe.SourceData{
			Name:        corpus[i].Name,
			Cuisine:     corpus[i].Cuisine,
			PriceRange:  corpus[i].PriceRange,
			Description: corpus[i].Description,
			Reviews:     corpus[i].Reviews,
		}
	}

	var profiles []vibe.Profile
	if skipExtraction {
		profiles = make([]vibe.Profile, len(sources))
		for j := range sources {
			profiles[j] = client.ExtractNeutral(sources[j])
		}
	} else {
		var err error
		profiles, err = client.ExtractBatch(ctx, sources)
		if err != nil {
			return nil, err
		}
	}

	for j, i := range missing {
		profile := profiles[j]
		restaurants[i].VibeProfile = &profile
		if err := db.SaveVibeProfile(ctx, corpus[i].ID, &profile); err != nil {
			return nil, err
		}
	}

	logging.Ctx(ctx).Info().
		Int("extracted", len(missing)).
		Bool("skip_extraction", skipExtraction).
		Msg("vibe profiles resolved")
	return restaurants, nil
}
