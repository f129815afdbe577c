// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// CorePlaylistVideoTable represents the 'core.playlistvideo' join table
type CorePlaylistVideoTable struct {
	Table      string
	PlaylistID string
	VideoID    string
	Position   string
	AddedAt    string
}

// CorePlaylistVideo is the schema definition for core.playlistvideo
var CorePlaylistVideo = CorePlaylistVideoTable{
	Table:      "core.playlistvideo",
	PlaylistID: "playlistid",
	VideoID:    "videoid",
	Position:   "position",
	AddedAt:    "addedat",
}
