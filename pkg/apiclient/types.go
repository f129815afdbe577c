// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient

import "time"

// User is the account profile as returned by the API.
type User struct {
	ID               string    `json:"_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	Avatar           string    `json:"avatar"`
	CoverImage       string    `json:"coverImage"`
	IsVerified       bool      `json:"isVerified"`
	IsGoogleSignedIn bool      `json:"isGoogleSignedIn"`
	IsLoggedIn       bool      `json:"isLoggedIn"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ChannelProfile is a user viewed as a channel, including the caller's
// subscription relationship.
type ChannelProfile struct {
	ID                        string `json:"_id"`
	FullName                  string `json:"fullName"`
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// HistoryOwner is the channel summary embedded in a watch-history entry.
type HistoryOwner struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
}

// WatchHistoryEntry is one watched video, newest first.
type WatchHistoryEntry struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	CreatedAt   time.Time    `json:"createdAt"`
	WatchedAt   time.Time    `json:"watchedAt"`
	Owner       HistoryOwner `json:"owner"`
}

// VideoOwner is the channel summary embedded in a catalog item.
type VideoOwner struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

// Video is a catalog entry as returned by the watch and feed endpoints.
type Video struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	VideoFile     string     `json:"videoFile"`
	Thumbnail     string     `json:"thumbnail"`
	Duration      float64    `json:"duration"`
	Views         int64      `json:"views"`
	IsPublished   bool       `json:"isPublished"`
	LikesCount    int64      `json:"likesCount"`
	IsLiked       bool       `json:"isLiked"`
	CommentsCount int64      `json:"commentsCount"`
	Owner         VideoOwner `json:"owner"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// VideoPage is one page of catalog results in the docs envelope.
type VideoPage struct {
	Docs        []Video `json:"docs"`
	TotalDocs   int     `json:"totalDocs"`
	Limit       int     `json:"limit"`
	Page        int     `json:"page"`
	TotalPages  int     `json:"totalPages"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
}

// FileUpload is one multipart file attachment.
type FileUpload struct {
	FieldName string
	FileName  string
	Content   []byte
}
