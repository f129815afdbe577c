// Copyright (c) 2026 VideoTube. All rights reserved.

package likes

import "context"

// LikeRepository abstracts like persistence for videos and comments.
type LikeRepository interface {
	/*
		ToggleVideoLike flips the user's like on a video.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - userID: string

		Returns:
		  - bool: true when the toggle resulted in a like, false in an unlike
		  - int: Total like count after the toggle
		  - error: Constraint violations or connectivity errors
	*/
	ToggleVideoLike(context context.Context, videoID, userID string) (bool, int, error)

	// ToggleCommentLike flips the user's like on a comment. Same contract
	// as ToggleVideoLike.
	ToggleCommentLike(context context.Context, commentID, userID string) (bool, int, error)

	/*
		LikedVideos returns the videos the user has liked, most recent
		like first, each with its channel summary.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []LikedVideoItem: Liked-videos collection
		  - error: Query failures
	*/
	LikedVideos(context context.Context, userID string) ([]LikedVideoItem, error)
}
