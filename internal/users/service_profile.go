// Copyright (c) 2026 VideoTube. All rights reserved.

package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Channel Profiles & History

/*
ChannelProfile returns the public channel view for a username.

Description: Includes subscriber counts and, when viewerID is non-empty,
whether that viewer subscribes to the channel.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string (may be empty for anonymous viewers)

Returns:
  - *ChannelProfile: Aggregated channel view
  - error: Validation or retrieval failures
*/
func (service *Service) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.BadRequest("username is missing")
	}

	return service.userRepository.ChannelProfile(context, strings.ToLower(username), viewerID)
}

// WatchHistory returns the user's watched videos, newest first.
func (service *Service) WatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error) {
	entries, err := service.userRepository.WatchHistory(context, userID)
	if err != nil {
		return nil, fmt.Errorf("users_service_watch_history_failed: %w", err)
	}
	return entries, nil
}

// RemoveFromHistory drops a single video from the user's watch history.
func (service *Service) RemoveFromHistory(context context.Context, userID, videoID string) error {
	if videoID == "" {
		return apperr.BadRequest("Video ID is required")
	}

	if err := service.userRepository.RemoveFromWatchHistory(context, userID, videoID); err != nil {
		return fmt.Errorf("users_service_remove_history_failed: %w", err)
	}

	return nil
}
