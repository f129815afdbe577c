// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// SocialSubscriptionTable represents the 'social.subscription' table
type SocialSubscriptionTable struct {
	Table        string
	SubscriberID string
	ChannelID    string
	CreatedAt    string
}

// SocialSubscription is the schema definition for social.subscription
var SocialSubscription = SocialSubscriptionTable{
	Table:        "social.subscription",
	SubscriberID: "subscriberid",
	ChannelID:    "channelid",
	CreatedAt:    "createdat",
}
