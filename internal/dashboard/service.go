// Copyright (c) 2026 VideoTube. All rights reserved.

package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/constants"
)

// # Definitions & Constructors

// Service implements the creator dashboard business logic.
type Service struct {
	statsRepository StatsRepository
	statsCache      StatsCache
	logger          *slog.Logger
}

// NewService constructs a new dashboard [Service]. statsCache may be nil
// to disable caching.
func NewService(statsRepo StatsRepository, statsCache StatsCache, logger *slog.Logger) *Service {
	return &Service{
		statsRepository: statsRepo,
		statsCache:      statsCache,
		logger:          logger,
	}
}

// # Operations

/*
Stats returns the channel's aggregated totals.

Description: Reads through the cache. Aggregates may be up to
[constants.ChannelStatsCacheTTL] stale. Cache failures degrade to the
primary store rather than failing the request.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - *Stats: Aggregated totals
  - error: Validation or query failures
*/
func (service *Service) Stats(context context.Context, channelID string) (*Stats, error) {
	if channelID == "" {
		return nil, apperr.NotFound("User not found")
	}

	if service.statsCache != nil {
		cached, err := service.statsCache.Get(context, channelID)
		if err != nil {
			service.logger.WarnContext(context, "channel stats cache read failed", "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	stats, err := service.statsRepository.Stats(context, channelID)
	if err != nil {
		return nil, fmt.Errorf("dashboard_service_stats_failed: %w", err)
	}

	if service.statsCache != nil {
		if err := service.statsCache.Set(context, channelID, stats, constants.ChannelStatsCacheTTL); err != nil {
			service.logger.WarnContext(context, "channel stats cache write failed", "error", err)
		}
	}

	return stats, nil
}

// ChannelVideos returns the channel's videos with engagement counts.
func (service *Service) ChannelVideos(context context.Context, channelID string) ([]ChannelVideo, error) {
	if channelID == "" {
		return nil, apperr.NotFound("User not found")
	}

	videos, err := service.statsRepository.ChannelVideos(context, channelID)
	if err != nil {
		return nil, fmt.Errorf("dashboard_service_videos_failed: %w", err)
	}

	return videos, nil
}
