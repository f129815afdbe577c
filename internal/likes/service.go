// Copyright (c) 2026 VideoTube. All rights reserved.

package likes

import (
	"context"
	"fmt"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/pkg/uuid"
)

// # Definitions & Constructors

// Service implements the like toggle business logic.
type Service struct {
	likeRepository LikeRepository
}

// NewService constructs a new like [Service].
func NewService(likeRepo LikeRepository) *Service {
	return &Service{likeRepository: likeRepo}
}

// # Operations

/*
ToggleVideoLike flips the user's like on a video.

Parameters:
  - context: context.Context
  - videoID: string
  - userID: string

Returns:
  - *VideoToggle: Resulting like state with the action taken
  - error: Validation or storage failures
*/
func (service *Service) ToggleVideoLike(context context.Context, videoID, userID string) (*VideoToggle, error) {
	if !uuid.Valid(videoID) {
		return nil, apperr.BadRequest("Invalid video Id")
	}

	liked, count, err := service.likeRepository.ToggleVideoLike(context, videoID, userID)
	if err != nil {
		return nil, fmt.Errorf("likes_service_video_toggle_failed: %w", err)
	}

	action := ActionUnliked
	if liked {
		action = ActionLiked
	}

	return &VideoToggle{
		VideoID:    videoID,
		LikesCount: count,
		IsLiked:    liked,
		Action:     action,
	}, nil
}

/*
ToggleCommentLike flips the user's like on a comment.

Parameters:
  - context: context.Context
  - commentID: string
  - userID: string

Returns:
  - *CommentToggle: Resulting like state
  - error: Validation or storage failures
*/
func (service *Service) ToggleCommentLike(context context.Context, commentID, userID string) (*CommentToggle, error) {
	if !uuid.Valid(commentID) {
		return nil, apperr.BadRequest("Invalid comment Id")
	}

	liked, count, err := service.likeRepository.ToggleCommentLike(context, commentID, userID)
	if err != nil {
		return nil, fmt.Errorf("likes_service_comment_toggle_failed: %w", err)
	}

	return &CommentToggle{
		CommentID:  commentID,
		IsLiked:    liked,
		LikesCount: count,
	}, nil
}

// LikedVideos returns the user's liked-videos collection.
func (service *Service) LikedVideos(context context.Context, userID string) ([]LikedVideoItem, error) {
	items, err := service.likeRepository.LikedVideos(context, userID)
	if err != nil {
		return nil, fmt.Errorf("likes_service_liked_videos_failed: %w", err)
	}
	return items, nil
}
