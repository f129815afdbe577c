// Copyright (c) 2026 VideoTube. All rights reserved.

// Package likes implements like toggles for videos and comments, and the
// signed-in user's liked-videos collection.
package likes

import "time"

// # Read Models

// VideoToggle is the outcome of a video like toggle.
type VideoToggle struct {
	VideoID    string `json:"videoId"`
	LikesCount int    `json:"likesCount"`
	IsLiked    bool   `json:"isLiked"`
	Action     string `json:"action"`
}

// CommentToggle is the outcome of a comment like toggle.
type CommentToggle struct {
	CommentID  string `json:"commentId"`
	IsLiked    bool   `json:"isLiked"`
	LikesCount int    `json:"likesCount"`
}

// LikedVideoOwner is the channel summary embedded in liked-video items.
type LikedVideoOwner struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int    `json:"subscribersCount"`
}

// LikedVideo is a video in the liked-videos collection.
type LikedVideo struct {
	ID          string          `json:"_id"`
	VideoFile   string          `json:"videoFile"`
	Thumbnail   string          `json:"thumbnail"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    float64         `json:"duration"`
	Views       int64           `json:"views"`
	IsPublished bool            `json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	Owner       LikedVideoOwner `json:"owner"`
}

// LikedVideoItem wraps a liked video the way the collection endpoint
// delivers it, keyed by the video's identifier.
type LikedVideoItem struct {
	ID    string     `json:"_id"`
	Video LikedVideo `json:"video"`
}

// # Toggle Actions

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

// # Request Fields

const (
	FieldVideoID   = "videoId"
	FieldCommentID = "commentId"
)
