package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared Redis client, nil when REDIS_ADDR is unset or unreachable.
var RedisClient *redis.Client

// InitRedis connects to REDIS_ADDR and pings it. It reports whether Redis is usable.
func InitRedis(ctx context.Context) bool {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return false
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		_ = RedisClient.Close()
		RedisClient = nil
		return false
	}
	return true
}
