package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weatherplaces/internal/geocode"
	"weatherplaces/internal/poi"
	"weatherplaces/internal/resolver"
	"weatherplaces/internal/state"
	"weatherplaces/internal/store"
	"weatherplaces/internal/weather"
)

type nopGeocoder struct{}

func (nopGeocoder) Geocode(ctx context.Context, query string) ([]geocode.Place, error) {
	return nil, nil
}

type nopPOI struct{}

func (nopPOI) SearchNearby(ctx context.Context, lat, lon float64) ([]poi.Hit, error) {
	return nil, nil
}

type countingWeather struct {
	calls atomic.Int64
}

func (c *countingWeather) Fetch(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	c.calls.Add(1)
	return &weather.Snapshot{Latitude: lat, Longitude: lon}, nil
}

func TestStartHonorsSubMinuteInterval(t *testing.T) {
	w := &countingWeather{}
	stateStore := state.New("London", 51.5074, -0.1278)
	r := resolver.New(nopGeocoder{}, w, nopPOI{}, store.NewMemoryStore(), stateStore,
		zap.NewNop().Sugar(), resolver.Config{
			DefaultLocationName: "London",
			DefaultLatitude:     51.5074,
			DefaultLongitude:    -0.1278,
		})

	// The configured interval must be used as-is, not truncated to whole
	// minutes.
	s := New(r, 50*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return w.calls.Load() >= 2
	}, 3*time.Second, 10*time.Millisecond)
}
