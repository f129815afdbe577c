// Copyright (c) 2026 VideoTube. All rights reserved.

package comments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Test Fakes

type fakeCommentRepo struct {
	byID  map[string]*Comment
	items []ThreadItem
}

func newFakeCommentRepo(comments ...*Comment) *fakeCommentRepo {
	repo := &fakeCommentRepo{byID: map[string]*Comment{}}
	for _, comment := range comments {
		repo.byID[comment.ID] = comment
	}
	return repo
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *Comment) error {
	f.byID[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id string) (*Comment, error) {
	if comment, ok := f.byID[id]; ok {
		return comment, nil
	}
	return nil, apperr.NotFound("Comment not found")
}

func (f *fakeCommentRepo) UpdateContent(_ context.Context, id, content string) (*Comment, error) {
	comment, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Comment not found")
	}
	comment.Content = content
	return comment, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCommentRepo) Thread(_ context.Context, _, _ string, limit, offset int) ([]ThreadItem, int, error) {
	end := min(offset+limit, len(f.items))
	if offset >= len(f.items) {
		return []ThreadItem{}, len(f.items), nil
	}
	return f.items[offset:end], len(f.items), nil
}

const (
	authorID   = "0199d9aa-0000-7000-8000-000000000001"
	strangerID = "0199d9aa-0000-7000-8000-000000000002"
	videoID    = "0199d9aa-0000-7000-8000-00000000aa01"
)

func seedComment() *Comment {
	return &Comment{
		ID:      "0199d9aa-0000-7000-8000-00000000cc01",
		VideoID: videoID,
		OwnerID: authorID,
		Content: "Great explanation!",
	}
}

// # Posting

func TestAddStoresTrimmedComment(t *testing.T) {
	repo := newFakeCommentRepo()
	service := NewService(repo)

	comment, err := service.Add(context.Background(), videoID, authorID, "  Great explanation!  ")

	require.NoError(t, err)
	assert.Equal(t, "Great explanation!", comment.Content)
	assert.Equal(t, authorID, comment.OwnerID)
	assert.Contains(t, repo.byID, comment.ID)
}

func TestAddRejectsEmptyContent(t *testing.T) {
	service := NewService(newFakeCommentRepo())

	_, err := service.Add(context.Background(), videoID, authorID, "   ")

	requireAppError(t, err, 400, "Comment content is required")
}

func TestAddRejectsMissingVideoID(t *testing.T) {
	service := NewService(newFakeCommentRepo())

	_, err := service.Add(context.Background(), "", authorID, "hello")

	requireAppError(t, err, 400, "Video ID is required")
}

// # Editing

func TestUpdateRewritesOwnComment(t *testing.T) {
	repo := newFakeCommentRepo(seedComment())
	service := NewService(repo)

	comment, err := service.Update(context.Background(), "0199d9aa-0000-7000-8000-00000000cc01", authorID, "Edited.")

	require.NoError(t, err)
	assert.Equal(t, "Edited.", comment.Content)
}

func TestUpdateRejectsNonAuthor(t *testing.T) {
	repo := newFakeCommentRepo(seedComment())
	service := NewService(repo)

	_, err := service.Update(context.Background(), "0199d9aa-0000-7000-8000-00000000cc01", strangerID, "Hijacked")

	requireAppError(t, err, 403, "You are not authorized to update this comment")
}

func TestUpdateMissingComment(t *testing.T) {
	service := NewService(newFakeCommentRepo())

	_, err := service.Update(context.Background(), "nope", authorID, "text")

	requireAppError(t, err, 404, "Comment not found")
}

// # Deletion

func TestDeleteRemovesOwnComment(t *testing.T) {
	repo := newFakeCommentRepo(seedComment())
	service := NewService(repo)

	err := service.Delete(context.Background(), "0199d9aa-0000-7000-8000-00000000cc01", authorID)

	require.NoError(t, err)
	assert.NotContains(t, repo.byID, "0199d9aa-0000-7000-8000-00000000cc01")
}

func TestDeleteRejectsNonAuthor(t *testing.T) {
	repo := newFakeCommentRepo(seedComment())
	service := NewService(repo)

	err := service.Delete(context.Background(), "0199d9aa-0000-7000-8000-00000000cc01", strangerID)

	requireAppError(t, err, 403, "You are not authorized to delete this comment")
	assert.Contains(t, repo.byID, "0199d9aa-0000-7000-8000-00000000cc01")
}

// # Thread

func TestThreadPaginates(t *testing.T) {
	repo := newFakeCommentRepo()
	for range 25 {
		repo.items = append(repo.items, ThreadItem{Content: "x"})
	}
	service := NewService(repo)

	page, err := service.Thread(context.Background(), videoID, authorID, 2, 10)

	require.NoError(t, err)
	assert.Equal(t, 25, page.TotalDocs)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Docs, 10)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
}

func TestThreadRequiresVideoID(t *testing.T) {
	service := NewService(newFakeCommentRepo())

	_, err := service.Thread(context.Background(), " ", authorID, 1, 10)

	requireAppError(t, err, 400, "Video ID is required")
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
