package weather

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey indicates the client was constructed without the
	// required API key. This is a programming error, not a runtime condition.
	ErrMissingAPIKey = errors.New("weather: api key not configured")

	// ErrDecode indicates a malformed provider payload.
	ErrDecode = errors.New("weather: failed to decode payload")

	// ErrNetwork indicates a transport-level failure (including timeouts).
	ErrNetwork = errors.New("weather: network failure")
)

// APIError is a non-success HTTP status from the weather provider.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather: api responded with status %d", e.Status)
}

// Client abstracts a weather data source returning a full snapshot for a
// coordinate.
type Client interface {
	Fetch(ctx context.Context, lat, lon float64) (*Snapshot, error)
}
