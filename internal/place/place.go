package place

import (
	"math"
	"strconv"
	"strings"
)

// PointOfInterestRecord is a tourist attraction persisted as a child of a
// LocationRecord. It exists only as part of its parent location.
type PointOfInterestRecord struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Subtitle  string  `json:"subtitle,omitempty"`
}

// LocationRecord is a stored place the user has searched for. Records are
// created once and never mutated; deleting a record deletes its POIs with it.
type LocationRecord struct {
	Name      string                  `json:"name"`
	Latitude  float64                 `json:"latitude"`
	Longitude float64                 `json:"longitude"`
	DedupeKey string                  `json:"dedupeKey"`
	POIs      []PointOfInterestRecord `json:"pois"`
}

// NewLocationRecord builds a record with a trimmed display name and a derived
// dedupe key.
func NewLocationRecord(name string, lat, lon float64, pois []PointOfInterestRecord) LocationRecord {
	trimmed := strings.TrimSpace(name)
	return LocationRecord{
		Name:      trimmed,
		Latitude:  lat,
		Longitude: lon,
		DedupeKey: DedupeKey(trimmed, lat, lon),
		POIs:      pois,
	}
}

// DedupeKey derives the stable identity string for a location: lower-cased
// trimmed name plus coordinates rounded to 4 decimal places (~11m precision),
// joined with "|". Two locations are the same iff their keys are equal.
func DedupeKey(name string, lat, lon float64) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return normalized + "|" + formatCoord(RoundCoord(lat)) + "|" + formatCoord(RoundCoord(lon))
}

// RoundCoord rounds a coordinate to 4 decimal places.
func RoundCoord(v float64) float64 {
	return math.Round(v*10_000) / 10_000
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
