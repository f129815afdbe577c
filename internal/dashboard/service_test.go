// Copyright (c) 2026 VideoTube. All rights reserved.

package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Test Fakes

type fakeStatsRepo struct {
	stats      Stats
	statsCalls int
}

func (f *fakeStatsRepo) Stats(_ context.Context, _ string) (*Stats, error) {
	f.statsCalls++
	stats := f.stats
	return &stats, nil
}

func (f *fakeStatsRepo) ChannelVideos(_ context.Context, _ string) ([]ChannelVideo, error) {
	return []ChannelVideo{}, nil
}

type fakeStatsCache struct {
	entries map[string]*Stats
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: map[string]*Stats{}}
}

func (f *fakeStatsCache) Get(_ context.Context, channelID string) (*Stats, error) {
	return f.entries[channelID], nil
}

func (f *fakeStatsCache) Set(_ context.Context, channelID string, stats *Stats, _ time.Duration) error {
	f.entries[channelID] = stats
	return nil
}

const channelID = "0199d9aa-0000-7000-8000-000000000001"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Stats

func TestStatsReadsThroughCache(t *testing.T) {
	repo := &fakeStatsRepo{stats: Stats{TotalVideos: 4, TotalViews: 1200}}
	cache := newFakeStatsCache()
	service := NewService(repo, cache, testLogger())

	stats, err := service.Stats(context.Background(), channelID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalVideos)
	assert.Equal(t, 1, repo.statsCalls)

	// Second read comes from the cache, the repo is not hit again.
	stats, err = service.Stats(context.Background(), channelID)
	require.NoError(t, err)
	assert.EqualValues(t, 1200, stats.TotalViews)
	assert.Equal(t, 1, repo.statsCalls)
}

func TestStatsWorksWithoutCache(t *testing.T) {
	repo := &fakeStatsRepo{stats: Stats{TotalSubscribers: 7}}
	service := NewService(repo, nil, testLogger())

	stats, err := service.Stats(context.Background(), channelID)

	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalSubscribers)
}

func TestStatsRequiresChannel(t *testing.T) {
	service := NewService(&fakeStatsRepo{}, nil, testLogger())

	_, err := service.Stats(context.Background(), "")

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
	assert.Equal(t, "User not found", appError.Message)
}
