package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retailpos/backend/internal/infrastructure/config"
)

// RedisCache is a byte cache backed by Redis, suitable when several
// instances should share report results.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and returns a cache
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient wraps an existing client, useful in tests
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached value and whether it was present
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores a value with a TTL. Failures are swallowed: the cache is
// an accelerator, not a system of record.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// Invalidate removes every key with the given prefix
func (c *RedisCache) Invalidate(ctx context.Context, keyPrefix string) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

// Close closes the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
