// Copyright (c) 2026 VideoTube. All rights reserved.

package subscriptions

import (
	"context"
	"fmt"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/pkg/uuid"
)

// # Definitions & Constructors

// Service implements the subscription business logic.
type Service struct {
	subscriptionRepository SubscriptionRepository
}

// NewService constructs a new subscription [Service].
func NewService(subscriptionRepo SubscriptionRepository) *Service {
	return &Service{subscriptionRepository: subscriptionRepo}
}

// # Operations

/*
Toggle flips the user's subscription to a channel.

Parameters:
  - context: context.Context
  - channelID: string
  - subscriberID: string

Returns:
  - *Toggle: Resulting subscription state with the action taken
  - error: Validation or storage failures
*/
func (service *Service) Toggle(context context.Context, channelID, subscriberID string) (*Toggle, error) {
	if channelID == "" {
		return nil, apperr.NotFound("Channel id is required")
	}
	if !uuid.Valid(channelID) {
		return nil, apperr.BadRequest("Channel id is not valid")
	}
	// The schema forbids self-referential rows, reject before hitting it.
	if channelID == subscriberID {
		return nil, apperr.BadRequest("You cannot subscribe to your own channel")
	}

	subscribed, count, err := service.subscriptionRepository.Toggle(context, channelID, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("subscriptions_service_toggle_failed: %w", err)
	}

	action := ActionUnsubscribed
	if subscribed {
		action = ActionSubscribed
	}

	return &Toggle{
		ChannelID:        channelID,
		SubscribersCount: count,
		Action:           action,
	}, nil
}

// Subscribers returns the accounts subscribed to a channel.
func (service *Service) Subscribers(context context.Context, channelID string) ([]Subscriber, error) {
	if channelID == "" {
		return nil, apperr.NotFound("Channel id is required")
	}
	if !uuid.Valid(channelID) {
		return nil, apperr.BadRequest("Channel id is not valid")
	}

	subscribers, err := service.subscriptionRepository.Subscribers(context, channelID)
	if err != nil {
		return nil, fmt.Errorf("subscriptions_service_subscribers_failed: %w", err)
	}

	return subscribers, nil
}

// SubscribedChannels returns the channels a user is subscribed to.
func (service *Service) SubscribedChannels(context context.Context, subscriberID string) ([]SubscribedChannel, error) {
	if subscriberID == "" {
		return nil, apperr.BadRequest("Subscriber ID is required")
	}
	if !uuid.Valid(subscriberID) {
		return nil, apperr.BadRequest("Invalid subscriber ID")
	}

	channels, err := service.subscriptionRepository.SubscribedChannels(context, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("subscriptions_service_channels_failed: %w", err)
	}

	return channels, nil
}
