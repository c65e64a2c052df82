package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps generated previews in Redis as JSON.
type RedisCache struct {
	client redis.Cmdable
	logger *slog.Logger
}

func NewRedisCache(client redis.Cmdable, logger *slog.Logger) *RedisCache {
	logger.Debug("Initializing system preview cache")

	return &RedisCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*System, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached system: %w", err)
	}

	var sys System
	if err := json.Unmarshal(data, &sys); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", "component", "system_cache", "key", key, "error", err)
		return nil, false, nil
	}
	return &sys, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, sys *System, ttl time.Duration) error {
	data, err := json.Marshal(sys)
	if err != nil {
		return fmt.Errorf("failed to marshal system: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache system: %w", err)
	}
	return nil
}
