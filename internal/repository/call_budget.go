package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const aiCallKeyPrefix = "chat_ai_calls:"

// RedisCallBudget tracks per-session AI fallback usage. The counter
// expires with the session TTL, so an idle session gets a fresh budget.
type RedisCallBudget struct {
	client *redis.Client
	max    int
	ttl    time.Duration
}

func NewRedisCallBudget(client *redis.Client, max int, ttl time.Duration) *RedisCallBudget {
	return &RedisCallBudget{
		client: client,
		max:    max,
		ttl:    ttl,
	}
}

func (b *RedisCallBudget) Take(ctx context.Context, sessionID string) (bool, error) {
	key := aiCallKeyPrefix + sessionID

	n, err := b.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count AI call for session %q: %w", sessionID, err)
	}
	if n == 1 {
		// First call of the session starts the TTL window.
		if err := b.client.Expire(ctx, key, b.ttl).Err(); err != nil {
			return false, fmt.Errorf("failed to set session TTL: %w", err)
		}
	}

	return n <= int64(b.max), nil
}
