package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces replay history keys in a shared Redis.
const DefaultRedisKeyPrefix = "roomcast:replay:"

// RedisStore persists replay history as one JSON array per room key.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix overrides the key prefix. Empty values are ignored.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: DefaultRedisKeyPrefix,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RedisStore) key(roomID string) string {
	return s.keyPrefix + roomID
}

// Save replaces the room's persisted history.
func (s *RedisStore) Save(ctx context.Context, roomID string, entries []json.RawMessage) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("replay: encode history for room %q: %w", roomID, err)
	}

	if err := s.client.Set(ctx, s.key(roomID), payload, 0).Err(); err != nil {
		return fmt.Errorf("replay: save history for room %q: %w", roomID, err)
	}
	return nil
}

// Load returns the room's persisted history, or an empty history if the key
// does not exist.
func (s *RedisStore) Load(ctx context.Context, roomID string) ([]json.RawMessage, error) {
	payload, err := s.client.Get(ctx, s.key(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("replay: load history for room %q: %w", roomID, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("replay: decode history for room %q: %w", roomID, err)
	}
	return entries, nil
}
