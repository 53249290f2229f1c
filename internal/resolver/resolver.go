// Package resolver implements the location-resolution workflow: it validates
// a free-text query, geocodes it, reconciles it against stored records,
// fetches weather and points of interest, and commits the outcome atomically
// into shared state. Failures never escape; they revert the state to the
// default location with a user-visible alert.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"weatherplaces/internal/geocode"
	"weatherplaces/internal/place"
	"weatherplaces/internal/poi"
	"weatherplaces/internal/state"
	"weatherplaces/internal/weather"
)

var (
	// ErrInvalidInput means the query failed local validation.
	ErrInvalidInput = errors.New("invalid location input")

	// ErrNoMatch means geocoding returned zero results.
	ErrNoMatch = errors.New("geocoding returned no match")

	// ErrSemanticMismatch means the geocoder's best guess does not name the
	// queried city or country.
	ErrSemanticMismatch = errors.New("geocoded place does not match query")
)

// Queries must be letters and spaces only, at least 3 characters long, with
// no token shorter than 3 characters. This rejects inputs like "uk" or "col"
// that are too ambiguous to geocode reliably.
var queryPattern = regexp.MustCompile(`^[A-Za-z ]+$`)

const (
	minQueryLen = 3
	minTokenLen = 3
)

// Config carries the fixed default location and POI cap.
type Config struct {
	DefaultLocationName string
	DefaultLatitude     float64
	DefaultLongitude    float64
	POILimit            int
}

// Resolver orchestrates the workflow. It is the single writer of the shared
// state store.
type Resolver struct {
	geocoder geocode.Geocoder
	weather  weather.Client
	pois     poi.Searcher
	store    place.Store
	state    *state.Store
	log      *zap.SugaredLogger
	cfg      Config

	// gen serializes resolutions: a commit is discarded once a newer
	// resolution has started.
	gen         atomic.Uint64
	defaultOnce sync.Once

	mu             sync.Mutex
	cancelInFlight context.CancelFunc
}

func New(
	geocoder geocode.Geocoder,
	weatherClient weather.Client,
	pois poi.Searcher,
	store place.Store,
	stateStore *state.Store,
	log *zap.SugaredLogger,
	cfg Config,
) *Resolver {
	if cfg.POILimit <= 0 {
		cfg.POILimit = 5
	}
	return &Resolver{
		geocoder: geocoder,
		weather:  weatherClient,
		pois:     pois,
		store:    store,
		state:    stateStore,
		log:      log,
		cfg:      cfg,
	}
}

// Resolve runs the full workflow for a raw user query. The result is observed
// via the shared state store: either the new location's name, coordinates,
// weather, and annotations are committed together, or the state reverts to
// the default location with an "Invalid Location" alert. Errors never
// propagate to the caller.
func (r *Resolver) Resolve(ctx context.Context, query string) {
	gen := r.gen.Add(1)

	r.mu.Lock()
	if r.cancelInFlight != nil {
		// A newer query supersedes any in-flight resolution.
		r.cancelInFlight()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancelInFlight = cancel
	r.mu.Unlock()
	defer cancel()

	r.commit(gen, func(s *state.Snapshot) { s.IsLoading = true })
	defer r.commit(gen, func(s *state.Snapshot) { s.IsLoading = false })

	if err := r.resolve(ctx, gen, query); err != nil {
		r.log.Infow("location resolution failed", "query", query, "error", err)
		r.revertToDefault(ctx, gen)
	}
}

// ResolveDefaultIfNeeded loads the default location exactly once, for
// startup.
func (r *Resolver) ResolveDefaultIfNeeded(ctx context.Context) {
	r.defaultOnce.Do(func() {
		r.Resolve(ctx, r.cfg.DefaultLocationName)
	})
}

// RefreshWeather re-fetches the weather for the currently committed location
// without touching the location or its annotations. On failure the last
// snapshot is kept. The fetched snapshot is committed only if the state still
// points at the same coordinates, so a refresh racing a resolution can never
// attach the old location's weather to the new one.
func (r *Resolver) RefreshWeather(ctx context.Context) error {
	gen := r.gen.Load()
	cur := r.state.Get()

	snap, err := r.weather.Fetch(ctx, cur.Latitude, cur.Longitude)
	if err != nil {
		return fmt.Errorf("weather refresh: %w", err)
	}

	r.commit(gen, func(s *state.Snapshot) {
		if s.Latitude != cur.Latitude || s.Longitude != cur.Longitude {
			return
		}
		s.Weather = snap
	})
	return nil
}

// ListLocations returns all stored locations sorted by name.
func (r *Resolver) ListLocations(ctx context.Context) ([]place.LocationRecord, error) {
	return r.store.ListAll(ctx)
}

// DeleteLocation removes a stored location and its POIs.
func (r *Resolver) DeleteLocation(ctx context.Context, dedupeKey string) error {
	return r.store.Delete(ctx, dedupeKey)
}

// DismissAlert hides the current alert.
func (r *Resolver) DismissAlert() {
	r.state.Update(func(s *state.Snapshot) { s.Alert.Visible = false })
}

func (r *Resolver) resolve(ctx context.Context, gen uint64, query string) error {
	trimmed := strings.TrimSpace(query)
	if err := validateQuery(trimmed); err != nil {
		return err
	}

	places, err := r.geocoder.Geocode(ctx, trimmed)
	if err != nil {
		return fmt.Errorf("geocoding: %w", err)
	}
	if len(places) == 0 {
		return ErrNoMatch
	}
	match := places[0]

	if !semanticMatch(trimmed, match) {
		return ErrSemanticMismatch
	}

	name := canonicalName(trimmed, match)
	key := place.DedupeKey(name, match.Latitude, match.Longitude)

	existing, err := r.store.FindByDedupeKey(ctx, key)
	if err != nil && !errors.Is(err, place.ErrNotFound) {
		return fmt.Errorf("store lookup: %w", err)
	}

	if existing != nil {
		return r.loadStored(ctx, gen, existing)
	}
	return r.saveNew(ctx, gen, name, match.Latitude, match.Longitude)
}

// loadStored handles a dedupe hit: reuse the persisted POIs and fetch only a
// fresh weather snapshot. No new write to the store.
func (r *Resolver) loadStored(ctx context.Context, gen uint64, rec *place.LocationRecord) error {
	snap, err := r.weather.Fetch(ctx, rec.Latitude, rec.Longitude)
	if err != nil {
		return fmt.Errorf("weather fetch: %w", err)
	}

	annotations := projectAnnotations(rec.POIs, r.cfg.POILimit)

	r.commit(gen, func(s *state.Snapshot) {
		s.LocationName = rec.Name
		s.Latitude = rec.Latitude
		s.Longitude = rec.Longitude
		s.Weather = snap
		s.Annotations = annotations
		s.SelectedTab = state.TabCurrentWeather
		s.Alert = state.Alert{
			Title:   "Location Loaded",
			Message: fmt.Sprintf("%s was loaded from saved locations.", rec.Name),
			Visible: true,
		}
	})

	r.log.Infow("loaded stored location", "name", rec.Name, "pois", len(annotations))
	return nil
}

// saveNew handles a previously-unseen location. The weather fetch runs first
// so an invalid location fails before the more expensive POI search and
// before anything is written.
func (r *Resolver) saveNew(ctx context.Context, gen uint64, name string, lat, lon float64) error {
	snap, err := r.weather.Fetch(ctx, lat, lon)
	if err != nil {
		return fmt.Errorf("weather fetch: %w", err)
	}

	hits, err := r.pois.SearchNearby(ctx, lat, lon)
	if err != nil {
		return fmt.Errorf("poi search: %w", err)
	}
	hits = poi.Dedupe(hits, r.cfg.POILimit)

	pois := make([]place.PointOfInterestRecord, 0, len(hits))
	for _, h := range hits {
		pois = append(pois, place.PointOfInterestRecord{
			Name:      h.Name,
			Latitude:  h.Latitude,
			Longitude: h.Longitude,
			Subtitle:  h.Subtitle,
		})
	}

	rec := place.NewLocationRecord(name, lat, lon, pois)
	if err := r.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("store insert: %w", err)
	}

	annotations := projectAnnotations(pois, r.cfg.POILimit)

	r.commit(gen, func(s *state.Snapshot) {
		s.LocationName = rec.Name
		s.Latitude = lat
		s.Longitude = lon
		s.Weather = snap
		s.Annotations = annotations
		s.SelectedTab = state.TabCurrentWeather
		s.Alert = state.Alert{
			Title:   "Location Saved",
			Message: fmt.Sprintf("%s was saved successfully.", rec.Name),
			Visible: true,
		}
	})

	r.log.Infow("saved new location", "name", rec.Name, "pois", len(pois))
	return nil
}

// revertToDefault restores the fixed default location after any failure. The
// default weather fetch is best effort; if it fails the previous snapshot
// stays visible.
func (r *Resolver) revertToDefault(ctx context.Context, gen uint64) {
	snap, err := r.weather.Fetch(ctx, r.cfg.DefaultLatitude, r.cfg.DefaultLongitude)
	if err != nil {
		r.log.Warnw("default weather fetch failed", "error", err)
		snap = nil
	}

	r.commit(gen, func(s *state.Snapshot) {
		s.LocationName = r.cfg.DefaultLocationName
		s.Latitude = r.cfg.DefaultLatitude
		s.Longitude = r.cfg.DefaultLongitude
		if snap != nil {
			s.Weather = snap
		}
		s.Annotations = nil
		s.SelectedTab = state.TabCurrentWeather
		s.Alert = state.Alert{
			Title:   "Invalid Location",
			Message: "Please enter a valid city or country name.",
			Visible: true,
		}
	})
}

// commit applies fn only while gen is still the newest resolution, so a
// stale response can never overwrite the state committed by a newer one.
func (r *Resolver) commit(gen uint64, fn func(*state.Snapshot)) {
	if r.gen.Load() != gen {
		return
	}
	r.state.Update(fn)
}

func validateQuery(trimmed string) error {
	if len(trimmed) < minQueryLen || !queryPattern.MatchString(trimmed) {
		return ErrInvalidInput
	}
	for _, token := range strings.Fields(trimmed) {
		if len(token) < minTokenLen {
			return ErrInvalidInput
		}
	}
	return nil
}

// semanticMatch requires the resolved locality or country to equal the query
// case-insensitively. The workflow must not silently accept a geocoder's
// closest guess that doesn't name-match the query.
func semanticMatch(query string, p geocode.Place) bool {
	q := strings.ToLower(query)
	if p.Locality != "" && strings.ToLower(p.Locality) == q {
		return true
	}
	if p.Country != "" && strings.ToLower(p.Country) == q {
		return true
	}
	return false
}

// canonicalName picks the display name: locality, then country, then the
// geocoder's place name, then the raw query.
func canonicalName(query string, p geocode.Place) string {
	switch {
	case p.Locality != "":
		return p.Locality
	case p.Country != "":
		return p.Country
	case p.Name != "":
		return p.Name
	default:
		return query
	}
}

func projectAnnotations(pois []place.PointOfInterestRecord, limit int) []place.Annotation {
	if len(pois) > limit {
		pois = pois[:limit]
	}
	annotations := make([]place.Annotation, 0, len(pois))
	for _, p := range pois {
		annotations = append(annotations, place.AnnotationFromPOI(p))
	}
	return annotations
}
