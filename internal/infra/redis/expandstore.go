// Package redis implements the expand state store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lunargrid/lunargrid/internal/grid"
	"github.com/lunargrid/lunargrid/pkg/logger"
)

const (
	// DefaultTTL bounds how long an untouched month keeps its expand state.
	// Every read or write slides the expiry forward.
	DefaultTTL = 180 * 24 * time.Hour

	// KeyPrefix is the prefix for expand state keys
	KeyPrefix = "expand:"
)

// ExpandStore persists per-user, per-month expand state in Redis as a JSON
// map keyed by row id.
type ExpandStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewExpandStore creates a new Redis expand state store.
func NewExpandStore(client *redis.Client, log *logger.Logger) *ExpandStore {
	return NewExpandStoreWithTTL(client, DefaultTTL, log)
}

// NewExpandStoreWithTTL creates a new Redis expand state store with a
// custom sliding TTL.
func NewExpandStoreWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *ExpandStore {
	return &ExpandStore{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "expand_store"),
	}
}

func key(userID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("%s%s:%d-%02d", KeyPrefix, userID, year, int(month))
}

// Get retrieves the expand state for a month. A missing key is an empty
// state, not an error.
func (s *ExpandStore) Get(ctx context.Context, userID uuid.UUID, year int, month time.Month) (grid.ExpandState, error) {
	k := key(userID, year, month)

	val, err := s.client.Get(ctx, k).Result()
	if err == redis.Nil {
		return grid.ExpandState{}, nil
	}
	if err != nil {
		s.logger.Error("expand store error", "operation", "get", "key", k, "error", err)
		return nil, fmt.Errorf("failed to get expand state: %w", err)
	}

	var state grid.ExpandState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expand state: %w", err)
	}

	// Slide the expiry on read so active months never expire
	if err := s.client.Expire(ctx, k, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to refresh expand state TTL", "key", k, "error", err)
	}

	return state, nil
}

// Set replaces the expand state for a month. An empty state deletes the key
// instead of storing an empty map.
func (s *ExpandStore) Set(ctx context.Context, userID uuid.UUID, year int, month time.Month, state grid.ExpandState) error {
	k := key(userID, year, month)

	if len(state) == 0 {
		if err := s.client.Del(ctx, k).Err(); err != nil {
			s.logger.Error("expand store error", "operation", "del", "key", k, "error", err)
			return fmt.Errorf("failed to delete expand state: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal expand state: %w", err)
	}

	if err := s.client.Set(ctx, k, data, s.ttl).Err(); err != nil {
		s.logger.Error("expand store error", "operation", "set", "key", k, "error", err)
		return fmt.Errorf("failed to set expand state: %w", err)
	}

	return nil
}
