// Tastegraph - Restaurant Taste Graph and Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package graph

import "sort"

// Cache holds the relationships produced by one corpus pass, keyed by source
// restaurant id with edges sorted descending by similarity. A Cache is
// immutable once built; re-running the mapper produces a replacement, never
// a partial patch.
type Cache struct {
	edges map[string][]Relationship
}

func newCache(edges map[string][]Relationship) *Cache {
	return &Cache{edges: edges}
}

// Restaurants returns the source restaurant ids present in the cache,
// sorted ascending.
func (c *Cache) Restaurants() []string {
	ids := make([]string, 0, len(c.edges))
	for id := range c.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Relationships returns the retained edges for a restaurant, best first.
// The result is a copy; callers may not mutate cache internals.
func (c *Cache) Relationships(restaurantID string) []Relationship {
	rels := c.edges[restaurantID]
	out := make([]Relationship, len(rels))
	copy(out, rels)
	return out
}

// All returns every retained edge in the cache, grouped by source
// restaurant in ascending id order. Used to persist a full pass result.
func (c *Cache) All() []Relationship {
	var out []Relationship
	for _, id := range c.Restaurants() {
		out = append(out, c.edges[id]...)
	}
	return out
}

// FindSimilar returns up to count restaurants classified as similar with at
// least minSimilarity composite score.
func (c *Cache) FindSimilar(restaurantID string, count int, minSimilarity float64) []Related {
	var out []Related
	for _, rel := range c.edges[restaurantID] {
		if rel.Type != TypeSimilar || rel.SimilarityScore < minSimilarity {
			continue
		}
		out = append(out, Related{RestaurantID: rel.RestaurantB, Score: rel.SimilarityScore})
		if len(out) == count {
			break
		}
	}
	return out
}

// FindComplementary returns up to count restaurants classified as
// complementary: different vibe and cuisine at a compatible price point.
func (c *Cache) FindComplementary(restaurantID string, count int) []Related {
	var out []Related
	for _, rel := range c.edges[restaurantID] {
		if rel.Type != TypeComplementary {
			continue
		}
		out = append(out, Related{RestaurantID: rel.RestaurantB, Score: rel.SimilarityScore})
		if len(out) == count {
			break
		}
	}
	return out
}

// Network performs a breadth-first traversal from start up to depth hops,
// returning, for every visited restaurant with retained edges, its directly
// related ids sorted ascending. Each restaurant is visited at most once, so
// cycles in the relationship graph terminate. depth 0 yields an empty
// network.
func (c *Cache) Network(start string, depth int) map[string][]string {
	network := make(map[string][]string)
	visited := make(map[string]struct{})

	type hop struct {
		id    string
		depth int
	}
	queue := []hop{{id: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if _, seen := visited[cur.id]; seen || cur.depth >= depth {
			continue
		}
		visited[cur.id] = struct{}{}

		rels, ok := c.edges[cur.id]
		if !ok {
			continue
		}

		related := make([]string, 0, len(rels))
		for _, rel := range rels {
			related = append(related, rel.RestaurantB)
			if cur.depth+1 < depth {
				queue = append(queue, hop{id: rel.RestaurantB, depth: cur.depth + 1})
			}
		}
		sort.Strings(related)
		network[cur.id] = related
	}

	return network
}
