// Copyright (c) 2026 VideoTube. All rights reserved.

// Package comments implements the video comment thread: posting, editing,
// deleting, and the paginated listing shown under the player.
package comments

import "time"

// # Entities

// Comment is a single comment on a video.
type Comment struct {
	ID        string    `json:"_id"`
	VideoID   string    `json:"video"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// # Read Models

// CommentOwner is the author summary embedded in thread items.
type CommentOwner struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ThreadItem is one comment as rendered in the thread, with its like
// state for the requesting user.
type ThreadItem struct {
	ID         string       `json:"_id"`
	Content    string       `json:"content"`
	LikesCount int          `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      CommentOwner `json:"owner"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ThreadPage is one page of a video's comment thread.
type ThreadPage struct {
	Docs        []ThreadItem `json:"docs"`
	TotalDocs   int          `json:"totalDocs"`
	Limit       int          `json:"limit"`
	Page        int          `json:"page"`
	TotalPages  int          `json:"totalPages"`
	HasNextPage bool         `json:"hasNextPage"`
	HasPrevPage bool         `json:"hasPrevPage"`
}

// # Request Fields

const (
	FieldVideoID   = "videoId"
	FieldCommentID = "commentId"
	FieldContent   = "content"
)
