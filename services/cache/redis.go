// Package cache keeps JSON blobs of read-mostly lists in Redis.
// A missing or corrupt entry reads as a miss and write failures are only logged,
// so callers always fall back to the database.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/vidyasetu/backend/core"
)

const keyPrefix = "vidyasetu"

// Cache is safe to use with a nil client: every Get misses and every write is a no-op.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger core.Logger
}

// NewRedisClient connects to conf.Address. It returns nil (caching disabled) when no address
// is configured or Redis cannot be reached.
func NewRedisClient(ctx context.Context, conf core.RedisConfig, logger core.Logger) *redis.Client {
	if conf.Address == "" {
		logger.Warn("redis address not set, caching disabled")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: conf.Address})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("redis ping failed, caching disabled", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func New(rdb *redis.Client, conf core.RedisConfig, logger core.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: conf.TTL, logger: logger}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}

// Get decodes the entry at key into dest and reports whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", err, map[string]interface{}{"key": key})
		}
		return false
	}
	if err = json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("corrupt cache entry", errors.Wrap(err, "decoding"), map[string]interface{}{"key": key})
		return false
	}
	return true
}

// Set stores value at key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", err, map[string]interface{}{"key": key})
		return
	}
	if err = c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", err, map[string]interface{}{"key": key})
	}
}

// Delete invalidates keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache delete failed", err, map[string]interface{}{"keys": keys})
	}
}

// Fetch returns the cached value at key, or loads, caches and returns it.
// Load errors are returned as is and nothing is cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func() (T, error)) (T, error) {
	var v T
	if c.Get(ctx, key, &v) {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(ctx, key, v)
	return v, nil
}
