package cache

import (
	"context"
	"eld-trip-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache caches computed route results keyed by the normalized stop
// sequence. Entries expire after the configured TTL so stale road data ages
// out.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, ttl: ttl}
}

func routeKey(key string) string {
	return "route:" + key
}

// Get returns the cached route result for key, or (nil, nil) on a miss.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (*ports.RouteResult, error) {
	if c.rdb == nil {
		return nil, errors.New("route cache: redis client is nil")
	}

	payload, err := c.rdb.Get(ctx, routeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: redis get %q: %w", key, err)
	}

	var result ports.RouteResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("get route cache: decode %q: %w", key, err)
	}

	return &result, nil
}

// Put stores the route result for key with the cache TTL.
func (c *RedisRouteCache) Put(ctx context.Context, key string, result ports.RouteResult) error {
	if c.rdb == nil {
		return errors.New("route cache: redis client is nil")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert route cache: encode %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, routeKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache: redis set %q: %w", key, err)
	}

	return nil
}
