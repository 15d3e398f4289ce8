package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sequenceKeyPrefix = "contract_counter:"

// RedisSequenceStore implements pricing.SequenceStore on a Redis INCR.
// INCR is a single atomic increment-and-fetch, so concurrent callers
// across service instances never receive the same counter value.
type RedisSequenceStore struct {
	client *redis.Client
}

func NewRedisSequenceStore(client *redis.Client) *RedisSequenceStore {
	return &RedisSequenceStore{client: client}
}

func (s *RedisSequenceStore) Next(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Incr(ctx, sequenceKeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %q: %w", key, err)
	}
	return n, nil
}
