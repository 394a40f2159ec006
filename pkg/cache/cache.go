package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Cache stores JSON encoded read models under a namespace that can be
// invalidated as a whole by bumping its version counter.
type Cache interface {
	// Get decodes the cached value into dest. A miss returns false, nil.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Version reads the namespace version. A value loaded after reading it
	// goes through SetAt so an Invalidate that lands in between wins.
	Version(ctx context.Context) (int64, error)
	SetAt(ctx context.Context, version int64, key string, value any) error
	// Invalidate drops every key of the namespace
	Invalidate(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Connect parses redisURL, creates a client, and verifies connectivity with a ping.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

type RedisCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisCache(client *redis.Client, namespace string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, namespace: namespace, ttl: ttl}
}

func (c *RedisCache) versionKey() string {
	return c.namespace + ":version"
}

func (c *RedisCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("read cache version: %w", err)
	}
	return version, nil
}

func (c *RedisCache) keyAt(version int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", c.namespace, version, key)
}

func (c *RedisCache) key(ctx context.Context, key string) (string, error) {
	version, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return c.keyAt(version, key), nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	k, err := c.key(ctx, key)
	if err != nil {
		return false, err
	}

	val, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("unmarshaling cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	version, err := c.Version(ctx)
	if err != nil {
		return err
	}
	return c.SetAt(ctx, version, key, value)
}

// SetAt stores value under the given version. Writing under a version that
// has since been bumped leaves an unreachable key that expires on its TTL.
func (c *RedisCache) SetAt(ctx context.Context, version int64, key string, value any) error {
	if value == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}

	if err := c.client.Set(ctx, c.keyAt(version, key), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate bumps the version; stale keys expire on their own TTL
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("bump cache version: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Noop is used when no redis is configured; every read is a miss
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error { return nil }
func (Noop) Version(context.Context) (int64, error) { return 0, nil }
func (Noop) SetAt(context.Context, int64, string, any) error { return nil }
func (Noop) Invalidate(context.Context) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
