// Copyright (c) 2026 VideoTube. All rights reserved.

package subscriptions

import "context"

// SubscriptionRepository abstracts the subscription graph storage.
type SubscriptionRepository interface {
	/*
		Toggle flips the user's subscription to a channel.

		Parameters:
		  - context: context.Context
		  - channelID: string
		  - subscriberID: string

		Returns:
		  - bool: true when the toggle resulted in a subscription
		  - int: Channel subscriber count after the toggle
		  - error: Constraint violations or connectivity errors
	*/
	Toggle(context context.Context, channelID, subscriberID string) (bool, int, error)

	// Subscribers returns the accounts subscribed to a channel.
	Subscribers(context context.Context, channelID string) ([]Subscriber, error)

	// SubscribedChannels returns the channels a user is subscribed to.
	SubscribedChannels(context context.Context, subscriberID string) ([]SubscribedChannel, error)
}
