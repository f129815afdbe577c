// Copyright (c) 2026 VideoTube. All rights reserved.

package videos

import "context"

// VideoRepository defines the data access contract for the video catalog.
type VideoRepository interface {

	// Create persists a freshly published video.
	Create(context context.Context, video *Video) error

	// FindByID returns the raw catalog entity, published or not.
	FindByID(context context.Context, id string) (*Video, error)

	// Update persists mutable fields (title, description, duration,
	// thumbnail, ispublished).
	Update(context context.Context, video *Video) error

	// Delete removes the video row. Likes, comments, playlist entries and
	// history rows cascade in the database.
	Delete(context context.Context, id string) error

	/*
		List returns published videos matching the query, plus the total
		match count for pagination.

		Parameters:
		  - context: context.Context
		  - query: ListQuery (text filter, owner filter, sort, page window)

		Returns:
		  - []VideoSummary: One page of feed items
		  - int: Total matching videos
		  - error: Retrieval failures
	*/
	List(context context.Context, query ListQuery) ([]VideoSummary, int, error)

	/*
		Detail returns the watch-page read model, resolving the viewer's
		like and subscription state. viewerID may be empty.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - viewerID: string

		Returns:
		  - *VideoDetail: Aggregated watch-page view
		  - error: apperr.NotFound or retrieval failures
	*/
	Detail(context context.Context, videoID, viewerID string) (*VideoDetail, error)

	// Search returns lightweight suggestions for published videos whose
	// title or description matches the text, newest first.
	Search(context context.Context, query string, limit int) ([]SearchSuggestion, error)

	// Related returns published videos (excluding excludeID) whose title or
	// description matches the given case-insensitive POSIX regex pattern.
	Related(context context.Context, excludeID, pattern string, limit int) ([]RelatedVideo, error)

	// IncrementViews bumps the view counter by one.
	IncrementViews(context context.Context, videoID string) error

	// HasWatched reports whether the video is already in the user's history.
	HasWatched(context context.Context, userID, videoID string) (bool, error)

	// AddToWatchHistory records the video in the user's history. Re-adding
	// an existing entry is a no-op.
	AddToWatchHistory(context context.Context, userID, videoID string) error
}
