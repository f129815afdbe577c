// Copyright (c) 2026 VideoTube. All rights reserved.

package comments

import "context"

// CommentRepository abstracts comment persistence so the service layer does
// not depend on a specific database.
type CommentRepository interface {
	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns a comment by its identifier.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Stored entity
		  - error: apperr.NotFound when no such comment exists
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	// UpdateContent replaces the comment body.
	UpdateContent(context context.Context, id, content string) (*Comment, error)

	// Delete removes the comment and, via cascade, its likes.
	Delete(context context.Context, id string) error

	/*
		Thread returns one page of a video's comments, newest first,
		with like counts and the viewer's own like state.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - viewerID: string (empty for no like state)
		  - limit: int
		  - offset: int

		Returns:
		  - []ThreadItem: Page of thread items
		  - int: Total number of comments on the video
		  - error: Query failures
	*/
	Thread(context context.Context, videoID, viewerID string, limit, offset int) ([]ThreadItem, int, error)
}
