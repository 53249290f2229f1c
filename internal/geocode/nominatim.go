package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"weatherplaces/internal/httpx"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimGeocoder implements Geocoder against the OpenStreetMap Nominatim
// search API. No API key is required, but the service expects a descriptive
// User-Agent.
type NominatimGeocoder struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NominatimOption customizes the geocoder.
type NominatimOption func(*NominatimGeocoder)

// WithNominatimBaseURL overrides the API endpoint, mainly for tests.
func WithNominatimBaseURL(u string) NominatimOption {
	return func(g *NominatimGeocoder) { g.baseURL = u }
}

func NewNominatimGeocoder(client *http.Client, opts ...NominatimOption) *NominatimGeocoder {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	g := &NominatimGeocoder{
		name:    "nominatim",
		baseURL: defaultNominatimBaseURL,
		httpCfg: httpx.ClientConfig{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *NominatimGeocoder) Name() string {
	return g.name
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) ([]Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", query)
		values.Set("format", "jsonv2")
		values.Set("addressdetails", "1")
		values.Set("limit", "5")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "weatherplaces/1.0")
		return req, nil
	}

	resp, err := httpx.Do(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("nominatim search failed: %w", err)
	}
	defer resp.Body.Close()

	var payload []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Address     struct {
			City         string `json:"city"`
			Town         string `json:"town"`
			Village      string `json:"village"`
			Municipality string `json:"municipality"`
			Country      string `json:"country"`
		} `json:"address"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nominatim decode failed: %w", err)
	}

	places := make([]Place, 0, len(payload))
	for _, item := range payload {
		lat, err := strconv.ParseFloat(item.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(item.Lon, 64)
		if err != nil {
			continue
		}

		locality := firstNonEmpty(
			item.Address.City,
			item.Address.Town,
			item.Address.Village,
			item.Address.Municipality,
		)

		places = append(places, Place{
			Name:      firstNonEmpty(item.Name, item.DisplayName),
			Locality:  locality,
			Country:   item.Address.Country,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return places, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
