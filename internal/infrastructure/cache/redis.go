// Package cache provides the Redis-backed summary cache. The API degrades
// gracefully: every miss or Redis error reads as a cache miss, so the service
// keeps working against PostgreSQL alone when Redis is down.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/monicajeon28/gmcruise-api/internal/application/settlement"
	"github.com/monicajeon28/gmcruise-api/pkg/config"
	"github.com/monicajeon28/gmcruise-api/pkg/logger"
)

var _ settlement.SummaryCache = (*RedisCache)(nil)

// RedisCache implements settlement.SummaryCache with a TTL per entry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New connects to Redis and verifies the connection with a ping. The entry
// TTL comes from cfg.TTLSeconds.
func New(cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		log:    log,
	}, nil
}

// Get returns the cached bytes, or (nil, false) on miss or error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return nil, false
	}
	return val, true
}

// Set stores the bytes under the configured TTL. Errors are logged, not returned.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Delete drops the key. Errors are logged, not returned.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis delete failed")
	}
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
