package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatchSize = 100

// RedisPageCache stores rendered pages in Redis so every server instance
// sees the same invalidations.
type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisPageCache connects to Redis and verifies the connection
func NewRedisPageCache(ctx context.Context, addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisPageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis page cache", zap.String("addr", addr))
	return &RedisPageCache{client: client, ttl: ttl, log: log}, nil
}

// Close closes the Redis connection
func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

// Get returns the cached page for key
func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get page from cache: %w", err)
	}
	return data, true, nil
}

// Generation returns the shared invalidation counter
func (c *RedisPageCache) Generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return generation, nil
}

// Set stores data under key with the configured TTL. The write runs in a
// transaction watching the generation counter, so it fails with ErrStale
// when an invalidation lands first.
func (c *RedisPageCache) Set(ctx context.Context, key string, data []byte, generation int64) error {
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyPrefix+key, data, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("failed to cache page: %w", err)
	}
}

// Invalidate advances the generation, then scans for keys under path and
// deletes those rooted at it
func (c *RedisPageCache) Invalidate(ctx context.Context, path string) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to advance cache generation: %w", err)
	}

	pattern := keyPrefix + escapeGlob(path) + "*"
	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

	var stale []string
	for iter.Next(ctx) {
		key := iter.Val()
		if rootedAt(strings.TrimPrefix(key, keyPrefix), path) {
			stale = append(stale, key)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached pages: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, stale...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached pages: %w", err)
	}

	c.log.Debug("Page cache invalidated", zap.String("path", path), zap.Int("keys", len(stale)))
	return nil
}

// escapeGlob escapes Redis MATCH metacharacters
func escapeGlob(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return replacer.Replace(s)
}
