// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// CorePlaylistTable represents the 'core.playlist' table
type CorePlaylistTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CorePlaylist is the schema definition for core.playlist
var CorePlaylist = CorePlaylistTable{
	Table:       "core.playlist",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
