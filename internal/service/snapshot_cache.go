package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotCache shares query snapshots between server instances
type RedisSnapshotCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var _ SnapshotCache = (*RedisSnapshotCache)(nil)

// NewRedisSnapshotCache stores snapshots under resep:query:<key>
func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{
		client: client,
		prefix: "resep:query:",
		logger: slog.Default().With(slog.String("component", "snapshot_cache")),
	}
}

// Get returns the snapshot for key. Redis errors count as a miss.
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("snapshot read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a snapshot that expires after ttl
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.logger.Warn("snapshot write failed", slog.String("key", key), slog.Any("error", err))
	}
}
