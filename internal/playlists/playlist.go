// Copyright (c) 2026 VideoTube. All rights reserved.

// Package playlists implements user-curated video collections: creation,
// membership management, and the aggregated views for the playlist pages.
package playlists

import "time"

// # Entities

// Playlist is a user-owned collection of videos. VideoIDs preserves the
// order in which videos were added.
type Playlist struct {
	ID          string    `json:"_id"`
	OwnerID     string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoIDs    []string  `json:"video"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Contains reports whether the playlist already holds the video.
func (playlist *Playlist) Contains(videoID string) bool {
	for _, id := range playlist.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}

// # Read Models

// Card is the playlist summary shown on the channel's playlists grid.
// PlaylistThumbnail is the first video's thumbnail, empty for empty
// playlists.
type Card struct {
	ID                string    `json:"_id"`
	OwnerID           string    `json:"owner"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	VideoIDs          []string  `json:"video"`
	PlaylistThumbnail string    `json:"playlistThumbnail"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Owner is the channel summary embedded in playlist views.
type Owner struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// VideoOwner extends Owner with the channel's subscriber count.
type VideoOwner struct {
	Owner
	SubscribersCount int `json:"subscribersCount"`
}

// Video is one playlist entry on the playlist detail page.
type Video struct {
	ID          string     `json:"_id"`
	VideoFile   string     `json:"videoFile"`
	Thumbnail   string     `json:"thumbnail"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    float64    `json:"duration"`
	Views       int64      `json:"views"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	Owner       VideoOwner `json:"owner"`
}

// Detail is the full playlist page view.
type Detail struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       Owner     `json:"owner"`
	Videos      []Video   `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Request Fields

const (
	FieldPlaylistID = "playlistId"
	FieldVideoID    = "videoId"
	FieldUserID     = "userId"
)
