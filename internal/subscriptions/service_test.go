// Copyright (c) 2026 VideoTube. All rights reserved.

package subscriptions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Test Fakes

type fakeSubscriptionRepo struct {
	subscribers map[string]map[string]bool // channelID -> subscriber set
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subscribers: map[string]map[string]bool{}}
}

func (f *fakeSubscriptionRepo) Toggle(_ context.Context, channelID, subscriberID string) (bool, int, error) {
	if f.subscribers[channelID] == nil {
		f.subscribers[channelID] = map[string]bool{}
	}
	subscribed := !f.subscribers[channelID][subscriberID]
	if subscribed {
		f.subscribers[channelID][subscriberID] = true
	} else {
		delete(f.subscribers[channelID], subscriberID)
	}
	return subscribed, len(f.subscribers[channelID]), nil
}

func (f *fakeSubscriptionRepo) Subscribers(_ context.Context, channelID string) ([]Subscriber, error) {
	subscribers := []Subscriber{}
	for id := range f.subscribers[channelID] {
		subscribers = append(subscribers, Subscriber{SubscriberID: id})
	}
	return subscribers, nil
}

func (f *fakeSubscriptionRepo) SubscribedChannels(_ context.Context, subscriberID string) ([]SubscribedChannel, error) {
	channels := []SubscribedChannel{}
	for channelID, set := range f.subscribers {
		if set[subscriberID] {
			channels = append(channels, SubscribedChannel{ID: channelID})
		}
	}
	return channels, nil
}

const (
	channelID = "0199d9aa-0000-7000-8000-000000000001"
	viewerID  = "0199d9aa-0000-7000-8000-000000000002"
)

// # Toggle

func TestToggleRoundTrip(t *testing.T) {
	service := NewService(newFakeSubscriptionRepo())

	toggle, err := service.Toggle(context.Background(), channelID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, ActionSubscribed, toggle.Action)
	assert.Equal(t, 1, toggle.SubscribersCount)

	toggle, err = service.Toggle(context.Background(), channelID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, ActionUnsubscribed, toggle.Action)
	assert.Equal(t, 0, toggle.SubscribersCount)
}

func TestToggleRejectsBadChannelID(t *testing.T) {
	service := NewService(newFakeSubscriptionRepo())

	_, err := service.Toggle(context.Background(), "not-a-uuid", viewerID)

	requireAppError(t, err, 400, "Channel id is not valid")
}

func TestToggleRejectsOwnChannel(t *testing.T) {
	service := NewService(newFakeSubscriptionRepo())

	_, err := service.Toggle(context.Background(), channelID, channelID)

	requireAppError(t, err, 400, "You cannot subscribe to your own channel")
}

// # Listings

func TestSubscribedChannelsListsBothDirections(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	service := NewService(repo)

	_, err := service.Toggle(context.Background(), channelID, viewerID)
	require.NoError(t, err)

	channels, err := service.SubscribedChannels(context.Background(), viewerID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channelID, channels[0].ID)

	subscribers, err := service.Subscribers(context.Background(), channelID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, viewerID, subscribers[0].SubscriberID)
}

func TestSubscribedChannelsRejectsBadID(t *testing.T) {
	service := NewService(newFakeSubscriptionRepo())

	_, err := service.SubscribedChannels(context.Background(), "not-a-uuid")

	requireAppError(t, err, 400, "Invalid subscriber ID")
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
