package geocode

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"
)

// GoogleGeocoder implements Geocoder via the Google Maps Geocoding API.
// Forward geocoding only yields coordinates, so a reverse lookup recovers the
// locality and country needed for the semantic match.
//
// The kelvins/geocoder package holds its API key in a package-level variable,
// so only one GoogleGeocoder should be constructed per process.
type GoogleGeocoder struct {
	name string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{name: "google"}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) ([]Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: query})
	if err != nil {
		return nil, fmt.Errorf("google geocoding failed: %w", err)
	}

	place := Place{
		Name:      query,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}

	addresses, err := geocoder.GeocodingReverse(loc)
	if err == nil && len(addresses) > 0 {
		addr := addresses[0]
		place.Locality = addr.City
		place.Country = addr.Country
		if addr.City != "" {
			place.Name = addr.City
		}
	}

	return []Place{place}, nil
}
