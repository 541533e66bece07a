// Package cache provides a small read-through cache for rank-provider
// responses so repeated identical queries within a session do not burn
// provider credits.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/octobees/seo-radar/api/internal/logger"
)

// SearchCache stores raw provider response payloads keyed by query shape.
// Lookups and writes are best effort: a cache failure never fails a search.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// Key builds a cache key from query parts, e.g. Key("keyword", "shoes", "de", "10").
func Key(parts ...string) string {
	return "ranker:" + strings.Join(parts, ":")
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewRedis connects to Redis and verifies connectivity before returning the cache.
func NewRedis(addr, password string, db int, ttl time.Duration, log logger.Logger) (SearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.Info("connected to redis", logger.String("addr", addr), logger.Duration("ttl", ttl))
	return &redisCache{client: client, ttl: ttl, log: log}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		}
		return nil, false
	}
	return payload, true
}

func (c *redisCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

type noopCache struct{}

// NewNoop returns a cache that never hits. Used when no Redis address is configured.
func NewNoop() SearchCache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (noopCache) Set(ctx context.Context, key string, payload []byte) {}
