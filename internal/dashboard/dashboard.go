// Copyright (c) 2026 VideoTube. All rights reserved.

// Package dashboard implements the creator analytics surface: aggregated
// channel stats and the channel's video table.
package dashboard

import "time"

// # Read Models

// Stats is the aggregate header of the creator dashboard.
type Stats struct {
	TotalVideos      int   `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int   `json:"totalSubscribers"`
	TotalComments    int   `json:"totalComments"`
	TotalLikes       int   `json:"totalLikes"`
}

// ChannelVideo is one row of the dashboard's video table, with its
// engagement counts.
type ChannelVideo struct {
	ID            string    `json:"_id"`
	OwnerID       string    `json:"owner"`
	VideoFile     string    `json:"videoFile"`
	Thumbnail     string    `json:"thumbnail"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	IsPublished   bool      `json:"isPublished"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
