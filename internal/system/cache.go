package system

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	sharedredis "planet-randomizer/internal/shared/redis"
)

// Cache keeps generated systems in Redis, keyed by baseline and seed. A nil
// *Cache is valid and caches nothing.
type Cache struct {
	client *sharedredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache returns nil when client is nil.
func NewCache(client *sharedredis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "system_cache"),
	}
}

func CacheKey(baseline string, seed int64) string {
	return fmt.Sprintf("system:%s:%d", baseline, seed)
}

// Get returns the cached record. Misses and Redis failures both report false.
func (c *Cache) Get(ctx context.Context, baseline string, seed int64) (*Record, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, CacheKey(baseline, seed)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache read failed", "baseline", baseline, "seed", seed, "error", err)
		}
		return nil, false
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Warn("Discarding unreadable cache entry", "baseline", baseline, "seed", seed, "error", err)
		return nil, false
	}
	return &record, true
}

func (c *Cache) Set(ctx context.Context, record *Record) {
	if c == nil || record == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		c.logger.Warn("Failed to encode cache entry", "system_id", record.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, CacheKey(record.Baseline, record.Seed), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", "system_id", record.ID, "error", err)
	}
}

func (c *Cache) Delete(ctx context.Context, baseline string, seed int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, CacheKey(baseline, seed)).Err(); err != nil {
		c.logger.Warn("Cache delete failed", "baseline", baseline, "seed", seed, "error", err)
	}
}
