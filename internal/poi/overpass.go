package poi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/serjvanilla/go-overpass"
)

const defaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// Tourist attraction categories queried from OpenStreetMap.
const tourismFilter = "attraction|museum|gallery|viewpoint|zoo|theme_park|aquarium"

// searchBoxDegrees is roughly an 8km box around the center at mid latitudes.
const searchBoxDegrees = 0.04

// OverpassSearcher implements Searcher against an Overpass (OpenStreetMap)
// endpoint.
type OverpassSearcher struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewOverpassSearcher(endpoint string, timeout time.Duration) *OverpassSearcher {
	if endpoint == "" {
		endpoint = defaultOverpassEndpoint
	}
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassSearcher{
		client:  &client,
		timeout: timeout,
	}
}

// SearchNearby queries tourism-tagged nodes and ways in a box around the
// coordinate. Results are raw; callers dedupe and cap them.
func (s *OverpassSearcher) SearchNearby(ctx context.Context, lat, lon float64) ([]Hit, error) {
	bbox := fmt.Sprintf("%f,%f,%f,%f",
		lat-searchBoxDegrees, lon-searchBoxDegrees,
		lat+searchBoxDegrees, lon+searchBoxDegrees)

	query := fmt.Sprintf(`
		[out:json];
		(
			node["tourism"~"%s"]["name"](%s);
			way["tourism"~"%s"]["name"](%s);
		);
		out body;
		>;
		out skel qt;
	`, tourismFilter, bbox, tourismFilter, bbox)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return hitsFromResult(&result), nil
}

func hitsFromResult(result *overpass.Result) []Hit {
	var hits []Hit

	for _, node := range result.Nodes {
		name := node.Tags["name"]
		if name == "" {
			continue
		}
		hits = append(hits, Hit{
			Name:      name,
			Latitude:  node.Lat,
			Longitude: node.Lon,
			Subtitle:  hitSubtitle(node.Tags),
		})
	}

	for _, way := range result.Ways {
		name := way.Tags["name"]
		if name == "" {
			continue
		}

		// Ways have no single coordinate; use the average of their nodes.
		var lat, lon float64
		count := len(way.Nodes)
		if count == 0 {
			continue
		}
		for _, node := range way.Nodes {
			lat += node.Lat
			lon += node.Lon
		}
		lat /= float64(count)
		lon /= float64(count)

		hits = append(hits, Hit{
			Name:      name,
			Latitude:  lat,
			Longitude: lon,
			Subtitle:  hitSubtitle(way.Tags),
		})
	}

	// Overpass results come out of maps; sort for a stable top-N selection.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Name != hits[j].Name {
			return hits[i].Name < hits[j].Name
		}
		return hits[i].Latitude < hits[j].Latitude
	})

	return hits
}

func hitSubtitle(tags map[string]string) string {
	if city := tags["addr:city"]; city != "" {
		return city
	}
	return tags["tourism"]
}
