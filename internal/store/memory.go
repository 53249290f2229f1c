// Package store provides location record persistence backends.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"weatherplaces/internal/place"
)

// MemoryStore is a concurrency-safe in-memory implementation of place.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: dedupe key
	data map[string]place.LocationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]place.LocationRecord),
	}
}

func (s *MemoryStore) FindByDedupeKey(ctx context.Context, key string) (*place.LocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[key]
	if !ok {
		return nil, place.ErrNotFound
	}

	out := cloneRecord(rec)
	return &out, nil
}

func (s *MemoryStore) Insert(ctx context.Context, rec place.LocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[rec.DedupeKey]; ok {
		return place.ErrDuplicate
	}
	s.data[rec.DedupeKey] = cloneRecord(rec)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return place.ErrNotFound
	}
	// POIs live only as children of the record, so this removes them too.
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]place.LocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]place.LocationRecord, 0, len(s.data))
	for _, rec := range s.data {
		records = append(records, cloneRecord(rec))
	}

	sort.Slice(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
	return records, nil
}

func cloneRecord(rec place.LocationRecord) place.LocationRecord {
	out := rec
	out.POIs = append([]place.PointOfInterestRecord(nil), rec.POIs...)
	return out
}
