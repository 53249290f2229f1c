// Package poi finds tourist points of interest near a coordinate.
package poi

import (
	"context"

	"weatherplaces/internal/place"
)

// Hit is one raw search result before deduplication.
type Hit struct {
	Name      string
	Latitude  float64
	Longitude float64
	Subtitle  string
}

// Searcher returns nearby tourist points of interest for a coordinate.
// Callers deduplicate and cap the results.
type Searcher interface {
	SearchNearby(ctx context.Context, lat, lon float64) ([]Hit, error)
}

// Dedupe drops duplicate hits (same normalized name and rounded coordinates)
// and caps the result at limit, preserving input order.
func Dedupe(hits []Hit, limit int) []Hit {
	seen := make(map[string]struct{}, len(hits))
	var out []Hit
	for _, h := range hits {
		if h.Name == "" {
			continue
		}
		key := place.DedupeKey(h.Name, h.Latitude, h.Longitude)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
