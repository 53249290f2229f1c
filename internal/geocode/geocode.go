// Package geocode resolves free-text place queries into named coordinates.
package geocode

import "context"

// Place is one geocoding match. Locality and Country may be empty when the
// provider does not decompose the address.
type Place struct {
	Name      string
	Locality  string
	Country   string
	Latitude  float64
	Longitude float64
}

// Geocoder resolves free text to candidate places. An empty slice means no
// match; an error means the provider itself failed.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]Place, error)
}
