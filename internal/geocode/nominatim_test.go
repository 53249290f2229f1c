package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nominatimFixture = `[
	{
		"lat": "51.5074456",
		"lon": "-0.1277653",
		"name": "London",
		"display_name": "London, Greater London, England, United Kingdom",
		"address": {
			"city": "London",
			"country": "United Kingdom"
		}
	},
	{
		"lat": "42.9836747",
		"lon": "-81.2496068",
		"name": "London",
		"display_name": "London, Ontario, Canada",
		"address": {
			"town": "London",
			"country": "Canada"
		}
	}
]`

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(nominatimFixture))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), WithNominatimBaseURL(srv.URL))

	places, err := g.Geocode(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "London", places[0].Name)
	assert.Equal(t, "London", places[0].Locality)
	assert.Equal(t, "United Kingdom", places[0].Country)
	assert.InDelta(t, 51.5074456, places[0].Latitude, 1e-9)

	// Second match resolves locality from the town field.
	assert.Equal(t, "London", places[1].Locality)
	assert.Equal(t, "Canada", places[1].Country)
}

func TestNominatimGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), WithNominatimBaseURL(srv.URL))

	places, err := g.Geocode(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestNominatimGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), WithNominatimBaseURL(srv.URL))

	_, err := g.Geocode(context.Background(), "London")
	assert.Error(t, err)
}
