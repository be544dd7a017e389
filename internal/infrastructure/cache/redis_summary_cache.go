// Package cache implements the dashboard summary cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appreport "github.com/retailbooks/backend/internal/application/report"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/infrastructure/config"
)

// RedisSummaryCache implements appreport.SummaryCache. Entries are JSON
// encoded and expire on their TTL; the dashboard recomputes on a miss.
type RedisSummaryCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSummaryCache connects a new Redis client and wraps it in a cache
func NewRedisSummaryCache(cfg config.RedisConfig) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSummaryCacheWithClient(client, ""), nil
}

// NewRedisSummaryCacheWithClient wraps an existing Redis client. Useful for
// sharing one client across components and for tests.
func NewRedisSummaryCacheWithClient(client *redis.Client, keyPrefix string) *RedisSummaryCache {
	if keyPrefix == "" {
		keyPrefix = "report:"
	}
	return &RedisSummaryCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached summary, or shared.ErrNotFound on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, key string) (*appreport.DashboardSummaryResponse, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var summary appreport.DashboardSummaryResponse
	if err := json.Unmarshal(payload, &summary); err != nil {
		// a corrupt entry behaves like a miss so the caller recomputes
		return nil, shared.ErrNotFound
	}
	return &summary, nil
}

// Set stores the summary under the key for the TTL
func (c *RedisSummaryCache) Set(ctx context.Context, key string, summary *appreport.DashboardSummaryResponse, ttl time.Duration) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// Close releases the underlying Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}
