// Copyright (c) 2026 VideoTube. All rights reserved.

package dashboard

import (
	"context"
	"time"
)

// StatsRepository computes the dashboard aggregates from primary storage.
type StatsRepository interface {
	/*
		Stats aggregates the channel's totals across videos, views,
		subscribers, comments, and likes.

		Parameters:
		  - context: context.Context
		  - channelID: string

		Returns:
		  - *Stats: Aggregated totals
		  - error: Query failures
	*/
	Stats(context context.Context, channelID string) (*Stats, error)

	// ChannelVideos returns the channel's videos with engagement
	// counts, newest first.
	ChannelVideos(context context.Context, channelID string) ([]ChannelVideo, error)
}

// StatsCache is a read-through cache in front of the stats aggregation.
type StatsCache interface {
	// Get returns the cached stats, or (nil, nil) on a miss.
	Get(context context.Context, channelID string) (*Stats, error)

	// Set stores the stats for the given TTL.
	Set(context context.Context, channelID string, stats *Stats, ttl time.Duration) error
}
