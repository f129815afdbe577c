// Copyright (c) 2026 VideoTube. All rights reserved.

package playlists

import (
	"context"
	"fmt"
	"strings"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/pkg/uuid"
)

// # Definitions & Constructors

// Service implements the playlist business logic.
type Service struct {
	playlistRepository PlaylistRepository
}

// NewService constructs a new playlist [Service].
func NewService(playlistRepo PlaylistRepository) *Service {
	return &Service{playlistRepository: playlistRepo}
}

// # Operations

// CreateInput holds the fields of a new playlist. VideoID optionally
// seeds the playlist with one video.
type CreateInput struct {
	OwnerID     string
	Name        string
	Description string
	VideoID     string
}

/*
Create starts a new playlist for the owner.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Playlist: Created playlist
  - error: Validation or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Playlist, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.BadRequest("Name is required")
	}

	playlist := &Playlist{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		VideoIDs:    []string{},
	}
	if input.VideoID != "" {
		playlist.VideoIDs = []string{input.VideoID}
	}

	if err := service.playlistRepository.Create(context, playlist); err != nil {
		return nil, fmt.Errorf("playlists_service_create_failed: %w", err)
	}

	return playlist, nil
}

// ByUser returns a user's playlists as grid cards.
func (service *Service) ByUser(context context.Context, userID string) ([]Card, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.NotFound("User id is not found")
	}

	cards, err := service.playlistRepository.ByOwner(context, userID)
	if err != nil {
		return nil, fmt.Errorf("playlists_service_by_user_failed: %w", err)
	}

	return cards, nil
}

// Get returns the playlist page view.
func (service *Service) Get(context context.Context, playlistID string) (*Detail, error) {
	if strings.TrimSpace(playlistID) == "" {
		return nil, apperr.NotFound("Playlist id is not found")
	}

	return service.playlistRepository.Detail(context, playlistID)
}

/*
AddVideo appends a video to a playlist owned by the requester.

Parameters:
  - context: context.Context
  - playlistID: string
  - videoID: string
  - requesterID: string

Returns:
  - *Playlist: Playlist after the addition
  - error: Validation, ownership, or storage failures
*/
func (service *Service) AddVideo(context context.Context, playlistID, videoID, requesterID string) (*Playlist, error) {
	if playlistID == "" || videoID == "" {
		return nil, apperr.NotFound("Playlist and video are required")
	}

	playlist, err := service.playlistRepository.FindByID(context, playlistID)
	if err != nil {
		return nil, apperr.BadRequest("Playlist not found")
	}

	if playlist.OwnerID != requesterID {
		return nil, apperr.Forbidden("You are not allowed to modify this playlist")
	}

	if playlist.Contains(videoID) {
		return nil, apperr.BadRequest("This video is already exist in playlist")
	}

	if err := service.playlistRepository.AddVideo(context, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("playlists_service_add_video_failed: %w", err)
	}

	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	return playlist, nil
}

/*
RemoveVideo drops a video from a playlist owned by the requester.

Parameters:
  - context: context.Context
  - playlistID: string
  - videoID: string
  - requesterID: string

Returns:
  - *Playlist: Playlist after the removal
  - error: Validation, ownership, or storage failures
*/
func (service *Service) RemoveVideo(context context.Context, playlistID, videoID, requesterID string) (*Playlist, error) {
	if playlistID == "" || videoID == "" {
		return nil, apperr.NotFound("Playlist and video are required")
	}

	playlist, err := service.playlistRepository.FindByID(context, playlistID)
	if err != nil || playlist.OwnerID != requesterID {
		return nil, apperr.BadRequest("Playlist not found or you are not the owner")
	}

	if err := service.playlistRepository.RemoveVideo(context, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("playlists_service_remove_video_failed: %w", err)
	}

	remaining := []string{}
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			remaining = append(remaining, id)
		}
	}
	playlist.VideoIDs = remaining

	return playlist, nil
}

/*
Update renames a playlist owned by the requester. The description is
replaced wholesale, an omitted description clears the stored one.

Parameters:
  - context: context.Context
  - playlistID: string
  - requesterID: string
  - name: string
  - description: string

Returns:
  - *Playlist: Updated playlist
  - error: Validation, ownership, or storage failures
*/
func (service *Service) Update(context context.Context, playlistID, requesterID, name, description string) (*Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.BadRequest("Name is required")
	}

	playlist, err := service.playlistRepository.FindByID(context, playlistID)
	if err != nil {
		return nil, apperr.Forbidden("playlist not found")
	}

	if playlist.OwnerID != requesterID {
		return nil, apperr.Unauthorized("You are not allowed to update this playlist")
	}

	if err := service.playlistRepository.Update(context, playlistID, name, description); err != nil {
		return nil, fmt.Errorf("playlists_service_update_failed: %w", err)
	}

	playlist.Name = name
	playlist.Description = description
	return playlist, nil
}

// Delete removes a playlist owned by the requester.
func (service *Service) Delete(context context.Context, playlistID, requesterID string) error {
	playlist, err := service.playlistRepository.FindByID(context, playlistID)
	if err != nil {
		return apperr.Forbidden("playlist not found")
	}

	if playlist.OwnerID != requesterID {
		return apperr.Unauthorized("You are not allowed to delete this playlist")
	}

	if err := service.playlistRepository.Delete(context, playlistID); err != nil {
		return fmt.Errorf("playlists_service_delete_failed: %w", err)
	}

	return nil
}
