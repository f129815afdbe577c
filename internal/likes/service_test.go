// Copyright (c) 2026 VideoTube. All rights reserved.

package likes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Test Fakes

type fakeLikeRepo struct {
	videoLikes   map[string]map[string]bool // videoID -> userID set
	commentLikes map[string]map[string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{
		videoLikes:   map[string]map[string]bool{},
		commentLikes: map[string]map[string]bool{},
	}
}

func toggleIn(set map[string]map[string]bool, targetID, userID string) (bool, int) {
	if set[targetID] == nil {
		set[targetID] = map[string]bool{}
	}
	liked := !set[targetID][userID]
	if liked {
		set[targetID][userID] = true
	} else {
		delete(set[targetID], userID)
	}
	return liked, len(set[targetID])
}

func (f *fakeLikeRepo) ToggleVideoLike(_ context.Context, videoID, userID string) (bool, int, error) {
	liked, count := toggleIn(f.videoLikes, videoID, userID)
	return liked, count, nil
}

func (f *fakeLikeRepo) ToggleCommentLike(_ context.Context, commentID, userID string) (bool, int, error) {
	liked, count := toggleIn(f.commentLikes, commentID, userID)
	return liked, count, nil
}

func (f *fakeLikeRepo) LikedVideos(_ context.Context, _ string) ([]LikedVideoItem, error) {
	return []LikedVideoItem{}, nil
}

const (
	userID    = "0199d9aa-0000-7000-8000-000000000001"
	videoID   = "0199d9aa-0000-7000-8000-00000000aa01"
	commentID = "0199d9aa-0000-7000-8000-00000000cc01"
)

// # Video Likes

func TestToggleVideoLikeRoundTrip(t *testing.T) {
	service := NewService(newFakeLikeRepo())

	toggle, err := service.ToggleVideoLike(context.Background(), videoID, userID)
	require.NoError(t, err)
	assert.True(t, toggle.IsLiked)
	assert.Equal(t, ActionLiked, toggle.Action)
	assert.Equal(t, 1, toggle.LikesCount)

	toggle, err = service.ToggleVideoLike(context.Background(), videoID, userID)
	require.NoError(t, err)
	assert.False(t, toggle.IsLiked)
	assert.Equal(t, ActionUnliked, toggle.Action)
	assert.Equal(t, 0, toggle.LikesCount)
}

func TestToggleVideoLikeCountsOtherUsers(t *testing.T) {
	repo := newFakeLikeRepo()
	service := NewService(repo)

	_, err := service.ToggleVideoLike(context.Background(), videoID, userID)
	require.NoError(t, err)

	toggle, err := service.ToggleVideoLike(context.Background(), videoID, "0199d9aa-0000-7000-8000-000000000002")
	require.NoError(t, err)
	assert.Equal(t, 2, toggle.LikesCount)
}

func TestToggleVideoLikeRejectsBadID(t *testing.T) {
	service := NewService(newFakeLikeRepo())

	_, err := service.ToggleVideoLike(context.Background(), "not-a-uuid", userID)

	requireAppError(t, err, 400, "Invalid video Id")
}

// # Comment Likes

func TestToggleCommentLikeRoundTrip(t *testing.T) {
	service := NewService(newFakeLikeRepo())

	toggle, err := service.ToggleCommentLike(context.Background(), commentID, userID)
	require.NoError(t, err)
	assert.True(t, toggle.IsLiked)
	assert.Equal(t, 1, toggle.LikesCount)

	toggle, err = service.ToggleCommentLike(context.Background(), commentID, userID)
	require.NoError(t, err)
	assert.False(t, toggle.IsLiked)
	assert.Equal(t, 0, toggle.LikesCount)
}

func TestToggleCommentLikeRejectsBadID(t *testing.T) {
	service := NewService(newFakeLikeRepo())

	_, err := service.ToggleCommentLike(context.Background(), "not-a-uuid", userID)

	requireAppError(t, err, 400, "Invalid comment Id")
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
