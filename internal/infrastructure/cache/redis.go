package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/pkg/logger"
)

// ErrLocked is returned by Obtain when another process holds the lock.
var ErrLocked = errors.New("resource is locked by another request")

// Cache wraps an optional Redis connection. With no REDIS_ADDR every method is a no-op.
type Cache struct {
	rdb    *redis.Client
	locker *redislock.Client
	ttl    time.Duration
}

// New connects to Redis when configured. A failed ping disables caching
// rather than failing startup.
func New(ctx context.Context, cfg *config.RedisConfig) *Cache {
	c := &Cache{ttl: cfg.CacheTTL}
	if cfg.Addr == "" {
		return c
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.LogError("cache", "New", "redis ping", cfg.Addr, err)
		rdb.Close()
		return c
	}

	c.rdb = rdb
	c.locker = redislock.New(rdb)
	logger.Get().WithField("addr", cfg.Addr).Info("connected to redis")
	return c
}

// Enabled reports whether a Redis connection is in use.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetObject decodes the JSON value at key into dest. It reports false on a miss.
func (c *Cache) GetObject(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetObject stores value as JSON under key with the configured TTL.
func (c *Cache) SetObject(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Obtain takes a cross-process lock. The returned release func is always safe to call.
func (c *Cache) Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if !c.Enabled() {
		return func() {}, nil
	}
	lock, err := c.locker.Obtain(ctx, "lock:"+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return func() {}, ErrLocked
	}
	if err != nil {
		return func() {}, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Get().WithField("key", key).Warn("failed to release redis lock: " + err.Error())
		}
	}, nil
}

// Close closes the Redis connection if one is open.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
