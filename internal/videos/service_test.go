// Copyright (c) 2026 VideoTube. All rights reserved.

package videos

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Test Fakes

type fakeVideoRepo struct {
	byID        map[string]*Video
	watched     map[string]bool // key: userID + "/" + videoID
	viewCount   map[string]int64
	lastPattern string
}

func newFakeVideoRepo(videos ...*Video) *fakeVideoRepo {
	repo := &fakeVideoRepo{
		byID:      map[string]*Video{},
		watched:   map[string]bool{},
		viewCount: map[string]int64{},
	}
	for _, video := range videos {
		repo.byID[video.ID] = video
	}
	return repo
}

func (f *fakeVideoRepo) Create(_ context.Context, video *Video) error {
	f.byID[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) FindByID(_ context.Context, id string) (*Video, error) {
	if video, ok := f.byID[id]; ok {
		return video, nil
	}
	return nil, apperr.NotFound("Video not found")
}

func (f *fakeVideoRepo) Update(_ context.Context, video *Video) error {
	f.byID[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeVideoRepo) List(_ context.Context, _ ListQuery) ([]VideoSummary, int, error) {
	return []VideoSummary{}, len(f.byID), nil
}

func (f *fakeVideoRepo) Detail(_ context.Context, videoID, _ string) (*VideoDetail, error) {
	video, ok := f.byID[videoID]
	if !ok {
		return nil, apperr.NotFound("Video not found")
	}
	return &VideoDetail{
		ID:    video.ID,
		Title: video.Title,
		Views: video.Views + f.viewCount[videoID],
	}, nil
}

func (f *fakeVideoRepo) Search(_ context.Context, _ string, _ int) ([]SearchSuggestion, error) {
	return []SearchSuggestion{}, nil
}

func (f *fakeVideoRepo) Related(_ context.Context, _, pattern string, _ int) ([]RelatedVideo, error) {
	f.lastPattern = pattern
	return []RelatedVideo{}, nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, videoID string) error {
	f.viewCount[videoID]++
	return nil
}

func (f *fakeVideoRepo) HasWatched(_ context.Context, userID, videoID string) (bool, error) {
	return f.watched[userID+"/"+videoID], nil
}

func (f *fakeVideoRepo) AddToWatchHistory(_ context.Context, userID, videoID string) error {
	f.watched[userID+"/"+videoID] = true
	return nil
}

type fakeMediaUploader struct {
	deleted []string
}

func (f *fakeMediaUploader) UploadVideo(_ context.Context, filename, _ string, _ io.Reader) (string, error) {
	return "https://cdn.test/videos/" + filename, nil
}

func (f *fakeMediaUploader) UploadThumbnail(_ context.Context, filename string, _ io.Reader) (string, error) {
	return "https://cdn.test/thumbnails/" + filename, nil
}

func (f *fakeMediaUploader) Delete(_ context.Context, objectURL string) error {
	f.deleted = append(f.deleted, objectURL)
	return nil
}

func seedVideo(ownerID string) *Video {
	return &Video{
		ID:          "0199d9aa-0000-7000-8000-00000000aa01",
		OwnerID:     ownerID,
		VideoFile:   "https://cdn.test/videos/clip.mp4",
		Thumbnail:   "https://cdn.test/thumbnails/clip.jpg",
		Title:       "Learn Go Generics",
		Description: "A deep dive",
		Duration:    420,
		IsPublished: true,
	}
}

const ownerID = "0199d9aa-0000-7000-8000-000000000001"

// # Publishing

func TestPublishCreatesCatalogEntry(t *testing.T) {
	repo := newFakeVideoRepo()
	service := NewService(repo, &fakeMediaUploader{})

	video, err := service.Publish(context.Background(), PublishInput{
		OwnerID:           ownerID,
		Title:             "Learn Go Generics",
		Description:       "A deep dive",
		Duration:          420,
		VideoFile:         strings.NewReader("binary"),
		VideoFilename:     "clip.mp4",
		VideoContentType:  "video/mp4",
		Thumbnail:         strings.NewReader("binary"),
		ThumbnailFilename: "clip.jpg",
	})

	require.NoError(t, err)
	assert.True(t, video.IsPublished)
	assert.Equal(t, ownerID, video.OwnerID)
	assert.Contains(t, video.VideoFile, "clip.mp4")
	assert.Contains(t, repo.byID, video.ID)
}

func TestPublishRejectsMissingMetadata(t *testing.T) {
	service := NewService(newFakeVideoRepo(), &fakeMediaUploader{})

	_, err := service.Publish(context.Background(), PublishInput{
		OwnerID: ownerID,
		Title:   "  ",
	})

	requireAppError(t, err, 400, "Title and description are required")
}

func TestPublishRejectsMissingFiles(t *testing.T) {
	service := NewService(newFakeVideoRepo(), &fakeMediaUploader{})

	_, err := service.Publish(context.Background(), PublishInput{
		OwnerID:     ownerID,
		Title:       "Learn Go Generics",
		Description: "A deep dive",
	})

	requireAppError(t, err, 400, "Video and thumbnail files are required")
}

// # Watch Page

func TestGetCountsFirstViewAndRecordsHistory(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})
	viewerID := "0199d9aa-0000-7000-8000-000000000002"

	_, err := service.Get(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01", viewerID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, repo.viewCount["0199d9aa-0000-7000-8000-00000000aa01"])
	assert.True(t, repo.watched[viewerID+"/0199d9aa-0000-7000-8000-00000000aa01"])

	// A rewatch by the same viewer must not count again.
	_, err = service.Get(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01", viewerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, repo.viewCount["0199d9aa-0000-7000-8000-00000000aa01"])
}

func TestGetAlwaysCountsAnonymousViews(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})

	for range 3 {
		_, err := service.Get(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01", "")
		require.NoError(t, err)
	}

	assert.EqualValues(t, 3, repo.viewCount["0199d9aa-0000-7000-8000-00000000aa01"])
}

func TestGetReturnsNotFound(t *testing.T) {
	service := NewService(newFakeVideoRepo(), &fakeMediaUploader{})

	_, err := service.Get(context.Background(), "missing", "")

	requireAppError(t, err, 404, "Video not found")
}

// # Lifecycle

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})

	_, err := service.Update(context.Background(), UpdateInput{
		VideoID:  "0199d9aa-0000-7000-8000-00000000aa01",
		EditorID: "someone-else",
		Title:    "Hijacked",
	})

	requireAppError(t, err, 401, "You are not allowed to update this video")
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})

	video, err := service.Update(context.Background(), UpdateInput{
		VideoID:  "0199d9aa-0000-7000-8000-00000000aa01",
		EditorID: ownerID,
		Title:    "Learn Go Generics, Properly",
	})

	require.NoError(t, err)
	assert.Equal(t, "Learn Go Generics, Properly", video.Title)
	assert.Equal(t, "A deep dive", video.Description)
	assert.EqualValues(t, 420, video.Duration)
}

func TestDeleteRemovesVideoAndMedia(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	uploader := &fakeMediaUploader{}
	service := NewService(repo, uploader)

	err := service.Delete(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01", ownerID)

	require.NoError(t, err)
	assert.NotContains(t, repo.byID, "0199d9aa-0000-7000-8000-00000000aa01")
	assert.Contains(t, uploader.deleted, "https://cdn.test/videos/clip.mp4")
	assert.Contains(t, uploader.deleted, "https://cdn.test/thumbnails/clip.jpg")
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})

	err := service.Delete(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01", "someone-else")

	requireAppError(t, err, 401, "You are not allowed to delete this video")
}

func TestTogglePublishFlips(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})

	video, err := service.TogglePublish(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01")
	require.NoError(t, err)
	assert.False(t, video.IsPublished)

	video, err = service.TogglePublish(context.Background(), "0199d9aa-0000-7000-8000-00000000aa01")
	require.NoError(t, err)
	assert.True(t, video.IsPublished)
}

// # Search & Related

func TestSearchRequiresQuery(t *testing.T) {
	service := NewService(newFakeVideoRepo(), &fakeMediaUploader{})

	_, err := service.Search(context.Background(), "   ", 0)

	requireAppError(t, err, 400, "No query provided")
}

func TestRelatedBuildsEscapedPattern(t *testing.T) {
	video := seedVideo(ownerID)
	video.Title = "Go 1.24 (what's new?)"
	repo := newFakeVideoRepo(video)
	service := NewService(repo, &fakeMediaUploader{})

	_, err := service.Related(context.Background(), video.ID)

	require.NoError(t, err)
	// Short words are dropped, the rest is escaped and alternated.
	assert.Equal(t, `1\.24|\(what's|new\?\)`, repo.lastPattern)
}

func TestListBuildsPaginationEnvelope(t *testing.T) {
	repo := newFakeVideoRepo(seedVideo(ownerID))
	service := NewService(repo, &fakeMediaUploader{})

	result, err := service.List(context.Background(), ListQuery{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalDocs)
	assert.Equal(t, 1, result.TotalPages)
	assert.False(t, result.HasNextPage)
	assert.False(t, result.HasPrevPage)
}

// # Helpers

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
	assert.Equal(t, message, appError.Message)
}
