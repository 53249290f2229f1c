// Package state holds the shared application state every read surface
// observes. A single writer (the resolver workflow) mutates it through one
// entry point; readers get copies and can subscribe to changes.
package state

import (
	"sync"

	"weatherplaces/internal/place"
	"weatherplaces/internal/weather"
)

// Tab indices for the read surfaces, mirroring the four app screens.
const (
	TabCurrentWeather = 0
	TabForecast       = 1
	TabPlaceMap       = 2
	TabStoredPlaces   = 3
)

// Alert is a user-visible notification bound to the state.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// Snapshot is one consistent view of the shared state.
type Snapshot struct {
	LocationName string             `json:"locationName"`
	Latitude     float64            `json:"latitude"`
	Longitude    float64            `json:"longitude"`
	Weather      *weather.Snapshot  `json:"weather,omitempty"`
	Annotations  []place.Annotation `json:"annotations"`
	IsLoading    bool               `json:"isLoading"`
	Alert        Alert              `json:"alert"`
	SelectedTab  int                `json:"selectedTab"`
}

// Store is the mutex-guarded state container. Mutations happen only through
// Update so every commit is atomic and observed as a whole.
type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]chan Snapshot
	nextID int
}

// New creates a store initialized to the default location with no weather,
// no annotations, and the current-weather tab selected.
func New(defaultName string, lat, lon float64) *Store {
	return &Store{
		snap: Snapshot{
			LocationName: defaultName,
			Latitude:     lat,
			Longitude:    lon,
			SelectedTab:  TabCurrentWeather,
		},
		subs: make(map[int]chan Snapshot),
	}
}

// Get returns a copy of the current state.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap)
}

// Update applies fn to the state under the lock and broadcasts the result to
// all subscribers. fn sees and mutates the one authoritative snapshot, so all
// fields it touches change together.
func (s *Store) Update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	out := cloneSnapshot(s.snap)
	for _, ch := range s.subs {
		// Non-blocking send; a slow subscriber misses intermediate states.
		select {
		case ch <- out:
		default:
		}
	}
	s.mu.Unlock()
}

// Subscribe registers a listener for state changes. The returned cancel
// function must be called to release the subscription.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Annotations = append([]place.Annotation(nil), snap.Annotations...)
	if snap.Weather != nil {
		w := *snap.Weather
		w.Hourly = append([]weather.HourlyForecast(nil), snap.Weather.Hourly...)
		w.Daily = append([]weather.DailyForecast(nil), snap.Weather.Daily...)
		out.Weather = &w
	}
	return out
}
