// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package videos implements the video catalog: publishing, playback reads,
search, and lifecycle management.

Read models in this package are denormalized views joining the owning
channel and its live subscriber count, shaped for direct consumption by
the frontend feed, watch page, and search box.
*/
package videos

import "time"

// # Domain Entities

// Video is the persisted catalog entity. Owner carries only the channel ID;
// the read models below embed the hydrated owner summary.
type Video struct {
	ID          string    `json:"_id"`
	OwnerID     string    `json:"owner"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerSummary is the channel block embedded in feed items.
type OwnerSummary struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
}

// VideoSummary is a feed/list item.
type VideoSummary struct {
	ID          string       `json:"_id"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	CreatedAt   time.Time    `json:"createdAt"`
	LikesCount  int64        `json:"likesCount"`
	Owner       OwnerSummary `json:"owner"`
}

// DetailOwner extends the owner block with the viewer's subscription state.
type DetailOwner struct {
	OwnerSummary
	IsSubscribed bool `json:"isSubscribed"`
}

// VideoDetail is the watch-page read model.
type VideoDetail struct {
	ID          string      `json:"_id"`
	VideoFile   string      `json:"videoFile"`
	Thumbnail   string      `json:"thumbnail"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    float64     `json:"duration"`
	Views       int64       `json:"views"`
	IsPublished bool        `json:"isPublished"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	LikesCount  int64       `json:"likesCount"`
	IsLiked     bool        `json:"isLiked"`
	Owner       DetailOwner `json:"owner"`
}

// SearchSuggestion is the lightweight search-box result.
type SearchSuggestion struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}

// RelatedOwner is the compact channel block on related-video cards.
type RelatedOwner struct {
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
}

// RelatedVideo is a watch-page sidebar card.
type RelatedVideo struct {
	ID        string       `json:"_id"`
	Thumbnail string       `json:"thumbnail"`
	Title     string       `json:"title"`
	Views     int64        `json:"views"`
	Duration  float64      `json:"duration"`
	CreatedAt time.Time    `json:"createdAt"`
	Owner     RelatedOwner `json:"owner"`
}

// ListResult mirrors the paginated feed envelope the frontend consumes.
type ListResult struct {
	Docs        []VideoSummary `json:"docs"`
	TotalDocs   int            `json:"totalDocs"`
	Limit       int            `json:"limit"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	HasNextPage bool           `json:"hasNextPage"`
	HasPrevPage bool           `json:"hasPrevPage"`
}

// ListQuery is the parsed feed filter.
type ListQuery struct {
	Query    string
	UserID   string
	SortBy   string
	SortType string
	Page     int
	Limit    int
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDuration    = "duration"
	FieldVideoFile   = "videoFile"
	FieldThumbnail   = "thumbnail"
	FieldVideoID     = "videoId"
)
