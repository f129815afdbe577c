// Copyright (c) 2026 VideoTube. All rights reserved.

package playlists

import "context"

// PlaylistRepository abstracts playlist persistence.
type PlaylistRepository interface {
	/*
		Create persists a new playlist, including any initial videos
		in Playlist.VideoIDs.

		Parameters:
		  - context: context.Context
		  - playlist: *Playlist

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	Create(context context.Context, playlist *Playlist) error

	/*
		FindByID returns a playlist with its ordered video IDs loaded.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Playlist: Stored entity
		  - error: apperr.NotFound when no such playlist exists
	*/
	FindByID(context context.Context, id string) (*Playlist, error)

	// ByOwner returns the owner's playlists as grid cards, newest first.
	ByOwner(context context.Context, ownerID string) ([]Card, error)

	// Detail returns the full playlist page view with resolved videos.
	Detail(context context.Context, id string) (*Detail, error)

	// AddVideo appends a video to the playlist.
	AddVideo(context context.Context, playlistID, videoID string) error

	// RemoveVideo drops a video from the playlist. Removing a video
	// that is not in the playlist is a no-op.
	RemoveVideo(context context.Context, playlistID, videoID string) error

	// Update renames the playlist and replaces its description.
	Update(context context.Context, id, name, description string) error

	// Delete removes the playlist and its membership rows.
	Delete(context context.Context, id string) error
}
