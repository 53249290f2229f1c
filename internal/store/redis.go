package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	redisv9 "github.com/redis/go-redis/v9"

	"weatherplaces/internal/place"
)

const recordKeyPrefix = "place:"

// RedisStore persists location records as JSON values keyed by dedupe key.
type RedisStore struct {
	client *redisv9.Client
}

func NewRedisStore(client *redisv9.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) FindByDedupeKey(ctx context.Context, key string) (*place.LocationRecord, error) {
	val, err := s.client.Get(ctx, recordKeyPrefix+key).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, place.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec place.LocationRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("redis record decode: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Insert(ctx context.Context, rec place.LocationRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis record encode: %w", err)
	}

	// SETNX enforces dedupe-key uniqueness.
	ok, err := s.client.SetNX(ctx, recordKeyPrefix+rec.DedupeKey, b, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return place.ErrDuplicate
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	deleted, err := s.client.Del(ctx, recordKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if deleted == 0 {
		return place.ErrNotFound
	}
	return nil
}

func (s *RedisStore) ListAll(ctx context.Context) ([]place.LocationRecord, error) {
	var records []place.LocationRecord

	iter := s.client.Scan(ctx, 0, recordKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		val, err := s.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redisv9.Nil) {
			continue // deleted between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}

		var rec place.LocationRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, fmt.Errorf("redis record decode: %w", err)
		}
		records = append(records, rec)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
	return records, nil
}
