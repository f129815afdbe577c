// Copyright (c) 2026 VideoTube. All rights reserved.

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/videotube/videotube/internal/platform/constants"
)

// RedisStatsCache implements StatsCache using JSON values with a TTL.
type RedisStatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new Redis-backed StatsCache.
func NewStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

// Get returns the cached stats, or (nil, nil) on a miss. A corrupt
// cache entry is treated as a miss.
func (cache *RedisStatsCache) Get(context context.Context, channelID string) (*Stats, error) {
	payload, err := cache.client.Get(context, constants.RedisPrefixChannelStats+channelID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_stats_cache_get_failed: %w", err)
	}

	stats := &Stats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, nil
	}

	return stats, nil
}

// Set stores the stats for the given TTL.
func (cache *RedisStatsCache) Set(context context.Context, channelID string, stats *Stats, ttl time.Duration) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis_stats_cache_marshal_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisPrefixChannelStats+channelID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_stats_cache_set_failed: %w", err)
	}

	return nil
}
