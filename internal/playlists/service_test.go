// Copyright (c) 2026 VideoTube. All rights reserved.

package playlists

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Test Fakes

type fakePlaylistRepo struct {
	byID map[string]*Playlist
}

func newFakePlaylistRepo(playlists ...*Playlist) *fakePlaylistRepo {
	repo := &fakePlaylistRepo{byID: map[string]*Playlist{}}
	for _, playlist := range playlists {
		repo.byID[playlist.ID] = playlist
	}
	return repo
}

func (f *fakePlaylistRepo) Create(_ context.Context, playlist *Playlist) error {
	f.byID[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) FindByID(_ context.Context, id string) (*Playlist, error) {
	playlist, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Playlist not found")
	}

	// Hand out a copy the way the database repository hydrates a fresh row,
	// so callers mutating the result never reach the stored state.
	snapshot := *playlist
	snapshot.VideoIDs = append([]string{}, playlist.VideoIDs...)
	return &snapshot, nil
}

func (f *fakePlaylistRepo) ByOwner(_ context.Context, ownerID string) ([]Card, error) {
	cards := []Card{}
	for _, playlist := range f.byID {
		if playlist.OwnerID == ownerID {
			cards = append(cards, Card{ID: playlist.ID, Name: playlist.Name, VideoIDs: playlist.VideoIDs})
		}
	}
	return cards, nil
}

func (f *fakePlaylistRepo) Detail(_ context.Context, id string) (*Detail, error) {
	playlist, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Playlist not found")
	}
	return &Detail{ID: playlist.ID, Name: playlist.Name, Videos: []Video{}}, nil
}

func (f *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID string) error {
	f.byID[playlistID].VideoIDs = append(f.byID[playlistID].VideoIDs, videoID)
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	playlist := f.byID[playlistID]
	remaining := []string{}
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			remaining = append(remaining, id)
		}
	}
	playlist.VideoIDs = remaining
	return nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, id, name, description string) error {
	f.byID[id].Name = name
	f.byID[id].Description = description
	return nil
}

func (f *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

const (
	ownerID    = "0199d9aa-0000-7000-8000-000000000001"
	strangerID = "0199d9aa-0000-7000-8000-000000000002"
	playlistID = "0199d9aa-0000-7000-8000-00000000pl01"
	videoID    = "0199d9aa-0000-7000-8000-00000000aa01"
)

func seedPlaylist(videoIDs ...string) *Playlist {
	return &Playlist{
		ID:       playlistID,
		OwnerID:  ownerID,
		Name:     "Watch later",
		VideoIDs: videoIDs,
	}
}

// # Creation

func TestCreateSeedsInitialVideo(t *testing.T) {
	repo := newFakePlaylistRepo()
	service := NewService(repo)

	playlist, err := service.Create(context.Background(), CreateInput{
		OwnerID: ownerID,
		Name:    "Watch later",
		VideoID: videoID,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{videoID}, playlist.VideoIDs)
	assert.Contains(t, repo.byID, playlist.ID)
}

func TestCreateWithoutVideoStartsEmpty(t *testing.T) {
	service := NewService(newFakePlaylistRepo())

	playlist, err := service.Create(context.Background(), CreateInput{
		OwnerID: ownerID,
		Name:    "Watch later",
	})

	require.NoError(t, err)
	assert.Empty(t, playlist.VideoIDs)
}

func TestCreateRequiresName(t *testing.T) {
	service := NewService(newFakePlaylistRepo())

	_, err := service.Create(context.Background(), CreateInput{OwnerID: ownerID, Name: "  "})

	requireAppError(t, err, 400, "Name is required")
}

// # Membership

func TestAddVideoAppends(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist())
	service := NewService(repo)

	playlist, err := service.AddVideo(context.Background(), playlistID, videoID, ownerID)

	require.NoError(t, err)
	assert.Equal(t, []string{videoID}, playlist.VideoIDs)

	// Stored state must gain the video exactly once.
	assert.Equal(t, []string{videoID}, repo.byID[playlistID].VideoIDs)
}

func TestAddVideoRejectsDuplicate(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist(videoID))
	service := NewService(repo)

	_, err := service.AddVideo(context.Background(), playlistID, videoID, ownerID)

	requireAppError(t, err, 400, "This video is already exist in playlist")
}

func TestAddVideoRejectsNonOwner(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist())
	service := NewService(repo)

	_, err := service.AddVideo(context.Background(), playlistID, videoID, strangerID)

	requireAppError(t, err, 403, "You are not allowed to modify this playlist")
}

func TestRemoveVideoDrops(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist(videoID))
	service := NewService(repo)

	playlist, err := service.RemoveVideo(context.Background(), playlistID, videoID, ownerID)

	require.NoError(t, err)
	assert.Empty(t, playlist.VideoIDs)
}

func TestRemoveVideoRejectsNonOwner(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist(videoID))
	service := NewService(repo)

	_, err := service.RemoveVideo(context.Background(), playlistID, videoID, strangerID)

	requireAppError(t, err, 400, "Playlist not found or you are not the owner")
}

// # Lifecycle

func TestUpdateReplacesNameAndDescription(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist())
	service := NewService(repo)

	playlist, err := service.Update(context.Background(), playlistID, ownerID, "Favorites", "")

	require.NoError(t, err)
	assert.Equal(t, "Favorites", playlist.Name)
	assert.Empty(t, playlist.Description)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist())
	service := NewService(repo)

	_, err := service.Update(context.Background(), playlistID, strangerID, "Favorites", "")

	requireAppError(t, err, 401, "You are not allowed to update this playlist")
}

func TestDeleteRemovesOwnPlaylist(t *testing.T) {
	repo := newFakePlaylistRepo(seedPlaylist())
	service := NewService(repo)

	err := service.Delete(context.Background(), playlistID, ownerID)

	require.NoError(t, err)
	assert.NotContains(t, repo.byID, playlistID)
}

func TestDeleteMissingPlaylist(t *testing.T) {
	service := NewService(newFakePlaylistRepo())

	err := service.Delete(context.Background(), playlistID, ownerID)

	requireAppError(t, err, 403, "playlist not found")
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
