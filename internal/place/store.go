package place

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate is returned by Insert when a record with the same dedupe
	// key already exists.
	ErrDuplicate = errors.New("location already stored")

	// ErrNotFound is returned when no record matches the given dedupe key.
	ErrNotFound = errors.New("location not found")
)

// Store is the contract any location persistence backend must satisfy.
// Implementations enforce uniqueness on the dedupe key.
type Store interface {
	FindByDedupeKey(ctx context.Context, key string) (*LocationRecord, error)
	Insert(ctx context.Context, rec LocationRecord) error
	Delete(ctx context.Context, key string) error
	ListAll(ctx context.Context) ([]LocationRecord, error)
}
