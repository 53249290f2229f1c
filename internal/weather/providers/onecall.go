// Package providers holds concrete weather data source clients.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"weatherplaces/internal/httpx"
	"weatherplaces/internal/weather"
)

const defaultOneCallBaseURL = "https://api.openweathermap.org/data/3.0/onecall"

// OneCallClient implements weather.Client against the OpenWeather One Call
// 3.0 API (current + hourly + daily in a single request).
type OneCallClient struct {
	name    string
	apiKey  string
	baseURL string
	timeout time.Duration
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// OneCallOption customizes the client.
type OneCallOption func(*OneCallClient)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) OneCallOption {
	return func(c *OneCallClient) { c.baseURL = u }
}

// WithTimeout bounds each fetch. Default is 20 seconds.
func WithTimeout(d time.Duration) OneCallOption {
	return func(c *OneCallClient) { c.timeout = d }
}

func NewOneCallClient(client *http.Client, apiKey string, opts ...OneCallOption) *OneCallClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "onecall",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	c := &OneCallClient{
		name:    "onecall",
		apiKey:  apiKey,
		baseURL: defaultOneCallBaseURL,
		timeout: 20 * time.Second,
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
		opt(c)
	}
	return c
}

func (c *OneCallClient) Name() string {
	return c.name
}

// Fetch retrieves a full weather snapshot for the coordinate. Non-success
// statuses map to *weather.APIError; transport failures and timeouts map to
// weather.ErrNetwork.
func (c *OneCallClient) Fetch(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	if c.apiKey == "" {
		return nil, weather.ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("units", "metric")
		values.Set("exclude", "minutely,alerts")
		values.Set("appid", c.apiKey)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) {
			return nil, &weather.APIError{Status: se.Code}
		}
		return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Lat      float64 `json:"lat"`
		Lon      float64 `json:"lon"`
		Timezone string  `json:"timezone"`
		Current  struct {
			Dt        int64   `json:"dt"`
			Sunrise   int64   `json:"sunrise"`
			Sunset    int64   `json:"sunset"`
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  int     `json:"pressure"`
			Humidity  int     `json:"humidity"`
			UVI       float64 `json:"uvi"`
			WindSpeed float64 `json:"wind_speed"`
			Weather   []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"current"`
		Hourly []struct {
			Dt   int64   `json:"dt"`
			Temp float64 `json:"temp"`
			Pop  float64 `json:"pop"`
		} `json:"hourly"`
		Daily []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Min float64 `json:"min"`
				Max float64 `json:"max"`
			} `json:"temp"`
			Pop     float64 `json:"pop"`
			Weather []struct {
				Main string `json:"main"`
			} `json:"weather"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrDecode, err)
	}

	snap := &weather.Snapshot{
		Latitude:  payload.Lat,
		Longitude: payload.Lon,
		Timezone:  payload.Timezone,
		Current: weather.CurrentConditions{
			Dt:        payload.Current.Dt,
			Sunrise:   payload.Current.Sunrise,
			Sunset:    payload.Current.Sunset,
			Temp:      payload.Current.Temp,
			FeelsLike: payload.Current.FeelsLike,
			Pressure:  payload.Current.Pressure,
			Humidity:  payload.Current.Humidity,
			UVIndex:   payload.Current.UVI,
			WindSpeed: payload.Current.WindSpeed,
			Condition: weather.ConditionUnknown,
		},
	}
	if len(payload.Current.Weather) > 0 {
		snap.Current.Condition = weather.ParseCondition(payload.Current.Weather[0].Main)
		snap.Current.Description = payload.Current.Weather[0].Description
	}

	for _, h := range payload.Hourly {
		snap.Hourly = append(snap.Hourly, weather.HourlyForecast{
			Dt:   h.Dt,
			Temp: h.Temp,
			Pop:  h.Pop,
		})
	}

	for _, d := range payload.Daily {
		day := weather.DailyForecast{
			Dt:        d.Dt,
			TempMin:   d.Temp.Min,
			TempMax:   d.Temp.Max,
			Pop:       d.Pop,
			Condition: weather.ConditionUnknown,
		}
		if len(d.Weather) > 0 {
			day.Condition = weather.ParseCondition(d.Weather[0].Main)
		}
		snap.Daily = append(snap.Daily, day)
	}

	return snap, nil
}
