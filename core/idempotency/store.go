// Package idempotency records request keys so a retried submission is not applied twice.
package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stockorder.GO/core/cache"
)

// Store claims request keys for a limited time.
type Store interface {
	// Claim records key for ttl. It returns false if key is already claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key so the request can be retried.
	Release(ctx context.Context, key string) error
}

const keyPrefix = "idempotency:order:"

// RedisStore keeps keys in Redis, shared by every order service replica.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

// MemoryStore keeps keys in process memory. Keys are only deduplicated per replica.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(c *cache.Cache) *MemoryStore {
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	return s.cache.SetIfAbsent(keyPrefix+key, struct{}{}, ttl), nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.cache.Delete(keyPrefix + key)
	return nil
}

// Purge drops expired keys. Run it periodically; expired keys are otherwise only
// replaced on the next claim of the same key.
func (s *MemoryStore) Purge() int {
	return s.cache.PurgeExpired()
}
