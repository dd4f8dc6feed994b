// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package taste

// Curated keyword lists per context value. Each sub-score is the mean
// restaurant-vibe weight across the list for that value.
var (
	timeVibes = map[string][]string{
		"breakfast":  {"casual", "quick-bite", "calm"},
		"lunch":      {"quick-bite", "business", "casual"},
		"dinner":     {"romantic", "upscale", "special-occasion"},
		"late_night": {"lively", "casual", "vibrant"},
	}

	coldWeatherVibes = []string{"intimate", "cozy", "warm", "rustic"}
	warmWeatherVibes = []string{"airy", "outdoor", "fresh", "vibrant"}

	occasionVibes = map[string][]string{
		"date":        {"romantic", "intimate", "upscale"},
		"business":    {"professional", "quiet", "upscale"},
		"family":      {"family-friendly", "casual", "spacious"},
		"celebration": {"lively", "festive", "special-occasion"},
		"casual":      {"casual", "relaxed", "everyday"},
	}

	soloVibes       = []string{"quiet", "casual", "quick-bite"}
	coupleVibes     = []string{"romantic", "intimate", "quiet"}
	smallGroupVibes = []string{"casual", "lively", "social"}
	largeGroupVibes = []string{"spacious", "lively", "family-friendly"}
)

// contextScore averages the sub-scores of whichever context dimensions are
// supplied. Absent dimensions are omitted from the average, not defaulted;
// no context at all is neutral 0.5.
func contextScore(restaurantVibes map[string]float64, ctx *Context) float64 {
	if ctx == nil {
		return 0.5
	}

	var scores []float64
	if ctx.TimeOfDay != "" {
		scores = append(scores, keywordScore(restaurantVibes, timeVibes[ctx.TimeOfDay]))
	}
	if ctx.Weather != "" {
		scores = append(scores, keywordScore(restaurantVibes, weatherVibes(ctx.Weather)))
	}
	if ctx.Occasion != "" {
		keywords, ok := occasionVibes[ctx.Occasion]
		if !ok {
			keywords = occasionVibes["casual"]
		}
		scores = append(scores, keywordScore(restaurantVibes, keywords))
	}
	if ctx.GroupSize > 0 {
		scores = append(scores, keywordScore(restaurantVibes, groupVibes(ctx.GroupSize)))
	}

	if len(scores) == 0 {
		return 0.5
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// keywordScore is the mean restaurant-vibe weight across the keyword list,
// clamped to [0, 1]. An unrecognized context value has no keywords and
// scores neutral.
func keywordScore(restaurantVibes map[string]float64, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.5
	}
	var sum float64
	for _, k := range keywords {
		sum += restaurantVibes[k]
	}
	return clamp01(sum / float64(len(keywords)))
}

// weatherVibes selects cozy indoor keywords for bad weather and airy ones
// otherwise.
func weatherVibes(weather string) []string {
	switch weather {
	case "rain", "snow", "cold":
		return coldWeatherVibes
	default:
		return warmWeatherVibes
	}
}

// groupVibes selects keywords by party size.
func groupVibes(size int) []string {
	switch {
	case size == 1:
		return soloVibes
	case size == 2:
		return coupleVibes
	case size <= 4:
		return smallGroupVibes
	default:
		return largeGroupVibes
	}
}
