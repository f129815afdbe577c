// Copyright (c) 2026 VideoTube. All rights reserved.

// Package subscriptions implements the channel subscription graph: the
// subscribe toggle and both directions of the relationship listing.
package subscriptions

// # Read Models

// Toggle is the outcome of a subscribe toggle.
type Toggle struct {
	ChannelID        string `json:"channelId"`
	SubscribersCount int    `json:"subscribersCount"`
	Action           string `json:"action"`
}

// SubscriberDetails is the account summary of one subscriber.
type SubscriberDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Username string `json:"username"`
}

// Subscriber is one entry in a channel's subscriber list. The count is
// the subscriber's own audience size.
type Subscriber struct {
	SubscriberID      string            `json:"subscriber"`
	SubscribersCount  int               `json:"subscribersCount"`
	SubscriberDetails SubscriberDetails `json:"subscriberDetails"`
}

// ChannelDetails is the channel summary in a subscribed-channels list.
type ChannelDetails struct {
	ID               string `json:"_id"`
	FullName         string `json:"fullName"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int    `json:"subscribersCount"`
}

// SubscribedChannel is one channel a user is subscribed to.
type SubscribedChannel struct {
	ID             string         `json:"_id"`
	ChannelDetails ChannelDetails `json:"channelDetails"`
}

// # Toggle Actions

const (
	ActionSubscribed   = "subscribed"
	ActionUnsubscribed = "unsubscribed"
)

// # Request Fields

const (
	FieldChannelID    = "channelId"
	FieldSubscriberID = "subscriberId"
)
