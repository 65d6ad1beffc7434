package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	drepo "MarketPulse/internal/domain/repository"
)

const modelStateKey = "marketpulse:model:state"

// RedisModelStore persists scoring-model state in Redis. The state is
// an opaque JSON blob owned by the model.
type RedisModelStore struct {
	client *redis.Client
	key    string
}

// NewRedisModelStore creates a store on the given client. An empty key
// selects the default.
func NewRedisModelStore(client *redis.Client, key string) *RedisModelStore {
	if key == "" {
		key = modelStateKey
	}
	return &RedisModelStore{client: client, key: key}
}

// Load returns the saved state or ErrNoState when nothing was saved yet.
func (s *RedisModelStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, drepo.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("load model state: %w", err)
	}
	return data, nil
}

// Save overwrites the stored state. No TTL; the model outlives sessions.
func (s *RedisModelStore) Save(ctx context.Context, state []byte) error {
	if err := s.client.Set(ctx, s.key, state, 0).Err(); err != nil {
		return fmt.Errorf("save model state: %w", err)
	}
	return nil
}

var _ drepo.ModelStore = (*RedisModelStore)(nil)
