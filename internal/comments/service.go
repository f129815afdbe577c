// Copyright (c) 2026 VideoTube. All rights reserved.

package comments

import (
	"context"
	"fmt"
	"strings"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/pkg/uuid"
)

// # Definitions & Constructors

// Service implements the comment thread business logic.
type Service struct {
	commentRepository CommentRepository
}

// NewService constructs a new comment [Service].
func NewService(commentRepo CommentRepository) *Service {
	return &Service{commentRepository: commentRepo}
}

// # Operations

/*
Thread returns one page of a video's comment thread.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerID: string (empty for anonymous like state)
  - page: int
  - limit: int

Returns:
  - *ThreadPage: Paginated thread items
  - error: Validation or query failures
*/
func (service *Service) Thread(context context.Context, videoID, viewerID string, page, limit int) (*ThreadPage, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, apperr.BadRequest("Video ID is required")
	}

	offset := (page - 1) * limit
	items, total, err := service.commentRepository.Thread(context, videoID, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("comments_service_thread_failed: %w", err)
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &ThreadPage{
		Docs:        items,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}, nil
}

/*
Add posts a new comment on a video.

Parameters:
  - context: context.Context
  - videoID: string
  - ownerID: string
  - content: string

Returns:
  - *Comment: Created comment
  - error: Validation or storage failures
*/
func (service *Service) Add(context context.Context, videoID, ownerID, content string) (*Comment, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, apperr.BadRequest("Video ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.BadRequest("Comment content is required")
	}

	comment := &Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: strings.TrimSpace(content),
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comments_service_add_failed: %w", err)
	}

	return comment, nil
}

/*
Update edits a comment owned by the editor.

Parameters:
  - context: context.Context
  - commentID: string
  - editorID: string
  - content: string

Returns:
  - *Comment: Updated comment
  - error: NotFound, ownership, or storage failures
*/
func (service *Service) Update(context context.Context, commentID, editorID, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.BadRequest("Comment content is required")
	}

	comment, err := service.commentRepository.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}

	if comment.OwnerID != editorID {
		return nil, apperr.Forbidden("You are not authorized to update this comment")
	}

	return service.commentRepository.UpdateContent(context, commentID, strings.TrimSpace(content))
}

/*
Delete removes a comment owned by the requester.

Parameters:
  - context: context.Context
  - commentID: string
  - requesterID: string

Returns:
  - error: NotFound, ownership, or storage failures
*/
func (service *Service) Delete(context context.Context, commentID, requesterID string) error {
	comment, err := service.commentRepository.FindByID(context, commentID)
	if err != nil {
		return err
	}

	if comment.OwnerID != requesterID {
		return apperr.Forbidden("You are not authorized to delete this comment")
	}

	if err := service.commentRepository.Delete(context, commentID); err != nil {
		return fmt.Errorf("comments_service_delete_failed: %w", err)
	}

	return nil
}
