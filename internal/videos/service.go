// Copyright (c) 2026 VideoTube. All rights reserved.

package videos

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/pkg/slice"
	"github.com/videotube/videotube/pkg/uuid"
)

// # Contracts & Constants

// MediaUploader stores video streams and thumbnails, returning public URLs.
type MediaUploader interface {
	UploadVideo(context context.Context, filename, contentType string, body io.Reader) (string, error)
	UploadThumbnail(context context.Context, filename string, body io.Reader) (string, error)
	Delete(context context.Context, objectURL string) error
}

const (
	// DefaultSearchLimit is the suggestion count when the client omits one.
	DefaultSearchLimit = 8

	// RelatedLimit caps the watch-page sidebar.
	RelatedLimit = 10

	// relatedMinWordLength filters filler words out of the related-videos
	// title pattern.
	relatedMinWordLength = 2
)

// Service implements the video catalog use cases.
type Service struct {
	videoRepository VideoRepository
	mediaUploader   MediaUploader
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(videoRepo VideoRepository, mediaUploader MediaUploader) *Service {
	return &Service{
		videoRepository: videoRepo,
		mediaUploader:   mediaUploader,
	}
}

// # Feed & Search

/*
List returns one page of the published feed.

Description: Applies the optional text and owner filters, resolves the sort
key, and wraps the page in the pagination envelope the frontend consumes.

Parameters:
  - context: context.Context
  - query: ListQuery

Returns:
  - *ListResult: Paginated feed
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, query ListQuery) (*ListResult, error) {
	docs, total, err := service.videoRepository.List(context, query)
	if err != nil {
		return nil, fmt.Errorf("videos_service_list_failed: %w", err)
	}

	totalPages := 0
	if query.Limit > 0 {
		totalPages = (total + query.Limit - 1) / query.Limit
	}

	return &ListResult{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       query.Limit,
		Page:        query.Page,
		TotalPages:  totalPages,
		HasNextPage: query.Page < totalPages,
		HasPrevPage: query.Page > 1 && total > 0,
	}, nil
}

// Search returns lightweight suggestions for the search box.
func (service *Service) Search(context context.Context, query string, limit int) ([]SearchSuggestion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.BadRequest("No query provided")
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	suggestions, err := service.videoRepository.Search(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("videos_service_search_failed: %w", err)
	}

	return suggestions, nil
}

/*
Related returns sidebar recommendations for a video.

Description: Builds a case-insensitive alternation pattern from the source
title's significant words (longer than two characters) and matches it
against other published titles and descriptions.

Parameters:
  - context: context.Context
  - videoID: string

Returns:
  - []RelatedVideo: Up to [RelatedLimit] cards
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Related(context context.Context, videoID string) ([]RelatedVideo, error) {
	video, err := service.videoRepository.FindByID(context, videoID)
	if err != nil {
		return nil, err
	}

	pattern := titlePattern(video.Title)
	if pattern == "" {
		return []RelatedVideo{}, nil
	}

	related, err := service.videoRepository.Related(context, videoID, pattern, RelatedLimit)
	if err != nil {
		return nil, fmt.Errorf("videos_service_related_failed: %w", err)
	}

	return related, nil
}

// titlePattern builds a regex alternation from a title's significant words.
// Words are escaped individually so punctuation in titles cannot break the
// pattern.
func titlePattern(title string) string {
	significant := slice.Filter(strings.Fields(title), func(word string) bool {
		return len(word) > relatedMinWordLength
	})
	return strings.Join(slice.Map(significant, regexp.QuoteMeta), "|")
}

// # Publishing & Lifecycle

// PublishInput holds the data required to publish a new video.
type PublishInput struct {
	OwnerID           string
	Title             string
	Description       string
	Duration          float64
	VideoFile         io.Reader
	VideoFilename     string
	VideoContentType  string
	Thumbnail         io.Reader
	ThumbnailFilename string
}

/*
Publish uploads a new video with its thumbnail and creates the catalog entry.

Parameters:
  - context: context.Context
  - input: PublishInput

Returns:
  - *Video: Created entity, published immediately
  - error: Validation, upload, or storage failures
*/
func (service *Service) Publish(context context.Context, input PublishInput) (*Video, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperr.BadRequest("Title and description are required")
	}

	if input.VideoFile == nil || input.Thumbnail == nil {
		return nil, apperr.BadRequest("Video and thumbnail files are required")
	}

	videoURL, err := service.mediaUploader.UploadVideo(context, input.VideoFilename, input.VideoContentType, input.VideoFile)
	if err != nil {
		return nil, apperr.Dependency("Video and thumbnail upload failed", err)
	}

	thumbnailURL, err := service.mediaUploader.UploadThumbnail(context, input.ThumbnailFilename, input.Thumbnail)
	if err != nil {
		_ = service.mediaUploader.Delete(context, videoURL)
		return nil, apperr.Dependency("Video and thumbnail upload failed", err)
	}

	video := &Video{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		IsPublished: true,
	}

	if err := service.videoRepository.Create(context, video); err != nil {
		return nil, fmt.Errorf("videos_service_publish_failed: %w", err)
	}

	return video, nil
}

/*
Get returns the watch-page view and registers the viewing.

Description: The view counter only advances the first time a signed-in user
watches the video; that first view also lands in the watch history.
Anonymous views always count.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *VideoDetail: Aggregated watch-page view
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, videoID, viewerID string) (*VideoDetail, error) {
	if _, err := service.videoRepository.FindByID(context, videoID); err != nil {
		return nil, err
	}

	countView := true
	if viewerID != "" {
		watched, err := service.videoRepository.HasWatched(context, viewerID, videoID)
		if err != nil {
			return nil, fmt.Errorf("videos_service_get_history_failed: %w", err)
		}
		countView = !watched
	}

	if countView {
		if err := service.videoRepository.IncrementViews(context, videoID); err != nil {
			return nil, fmt.Errorf("videos_service_get_views_failed: %w", err)
		}
		if viewerID != "" {
			if err := service.videoRepository.AddToWatchHistory(context, viewerID, videoID); err != nil {
				return nil, fmt.Errorf("videos_service_get_record_failed: %w", err)
			}
		}
	}

	return service.videoRepository.Detail(context, videoID, viewerID)
}

// UpdateInput holds the optional fields of a video edit. Nil/zero fields
// keep their stored value.
type UpdateInput struct {
	VideoID           string
	EditorID          string
	Title             string
	Description       string
	Duration          float64
	Thumbnail         io.Reader
	ThumbnailFilename string
}

/*
Update edits a video's metadata and optionally replaces its thumbnail.

Parameters:
  - context: context.Context
  - input: UpdateInput

Returns:
  - *Video: Updated entity
  - error: NotFound, ownership, upload, or storage failures
*/
func (service *Service) Update(context context.Context, input UpdateInput) (*Video, error) {
	video, err := service.videoRepository.FindByID(context, input.VideoID)
	if err != nil {
		return nil, err
	}

	if video.OwnerID != input.EditorID {
		return nil, apperr.Unauthorized("You are not allowed to update this video")
	}

	if input.Title != "" {
		video.Title = input.Title
	}
	if input.Description != "" {
		video.Description = input.Description
	}
	if input.Duration > 0 {
		video.Duration = input.Duration
	}

	oldThumbnail := ""
	if input.Thumbnail != nil {
		thumbnailURL, err := service.mediaUploader.UploadThumbnail(context, input.ThumbnailFilename, input.Thumbnail)
		if err != nil {
			return nil, apperr.Dependency("Thumbnail upload failed", err)
		}
		oldThumbnail = video.Thumbnail
		video.Thumbnail = thumbnailURL
	}

	if err := service.videoRepository.Update(context, video); err != nil {
		return nil, fmt.Errorf("videos_service_update_failed: %w", err)
	}

	if oldThumbnail != "" {
		_ = service.mediaUploader.Delete(context, oldThumbnail)
	}

	return video, nil
}

/*
Delete removes a video and its stored media.

Parameters:
  - context: context.Context
  - videoID: string
  - requesterID: string

Returns:
  - error: NotFound, ownership, or storage failures
*/
func (service *Service) Delete(context context.Context, videoID, requesterID string) error {
	video, err := service.videoRepository.FindByID(context, videoID)
	if err != nil {
		return apperr.Forbidden("video not found")
	}

	if video.OwnerID != requesterID {
		return apperr.Unauthorized("You are not allowed to delete this video")
	}

	if err := service.videoRepository.Delete(context, videoID); err != nil {
		return fmt.Errorf("videos_service_delete_failed: %w", err)
	}

	// Object cleanup is best-effort, the catalog row is the source of truth.
	_ = service.mediaUploader.Delete(context, video.VideoFile)
	_ = service.mediaUploader.Delete(context, video.Thumbnail)

	return nil
}

/*
TogglePublish flips the video between published and unpublished.

Parameters:
  - context: context.Context
  - videoID: string

Returns:
  - *Video: Updated entity
  - error: NotFound or storage failures
*/
func (service *Service) TogglePublish(context context.Context, videoID string) (*Video, error) {
	video, err := service.videoRepository.FindByID(context, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := service.videoRepository.Update(context, video); err != nil {
		return nil, fmt.Errorf("videos_service_toggle_publish_failed: %w", err)
	}

	return video, nil
}
