package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig bundles all runtime configuration, read from environment with
// sensible defaults.
type AppConfig struct {
	// OpenWeather One Call 3.0 key. Required for weather fetches.
	OneCallAPIKey string

	// Optional Google Maps geocoding key; when set, Google replaces the
	// default Nominatim geocoder.
	GoogleGeocodeAPIKey string

	// Endpoints, overridable for self-hosted instances.
	NominatimBaseURL string
	OverpassEndpoint string

	// The fixed fallback location committed when a resolution fails.
	DefaultLocationName string
	DefaultLatitude     float64
	DefaultLongitude    float64

	// Maximum points of interest kept per location.
	POILimit int

	// WeatherTimeout bounds each weather fetch.
	WeatherTimeout time.Duration

	// RefreshInterval controls the periodic weather refresh.
	RefreshInterval time.Duration

	// RedisAddr selects the redis-backed record store; empty means the
	// in-memory store.
	RedisAddr string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OneCallAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GoogleGeocodeAPIKey = os.Getenv("GOOGLE_GEOCODE_API_KEY")

	cfg.NominatimBaseURL = os.Getenv("NOMINATIM_BASE_URL")
	cfg.OverpassEndpoint = os.Getenv("OVERPASS_ENDPOINT")

	cfg.DefaultLocationName = getenvDefault("DEFAULT_LOCATION_NAME", "London")
	cfg.DefaultLatitude = getenvFloat("DEFAULT_LOCATION_LAT", 51.5074)
	cfg.DefaultLongitude = getenvFloat("DEFAULT_LOCATION_LON", -0.1278)

	cfg.POILimit = getenvInt("POI_LIMIT", 5)

	timeoutStr := getenvDefault("WEATHER_TIMEOUT", "20s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_TIMEOUT: %w", err)
	}
	cfg.WeatherTimeout = timeout

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
