// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package users implements the account, identity, and channel-profile layer.

It defines the core domain entities (User, Session) and the logic for the
full account lifecycle: registration with media uploads, email verification,
credential and Google Sign-In authentication, OTP-based password recovery,
and the channel-facing read models (profiles, watch history).

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package users

import "time"

// # Domain Entities

// User represents a registered member of the VideoTube platform.
type User struct {
	ID               string     `json:"_id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	FullName         string     `json:"fullName"`
	Avatar           string     `json:"avatar"`
	CoverImage       string     `json:"coverImage"`
	PasswordHash     string     `json:"-"` // Explicitly omitted from JSON for security. Empty for Google-only accounts.
	RefreshToken     string     `json:"-"` // Single active refresh token. Omitted for security.
	GoogleID         string     `json:"-"` // Google 'sub' claim. Set only for OAuth-created accounts.
	IsVerified       bool       `json:"isVerified"`
	IsGoogleSignedIn bool       `json:"isGoogleSignedIn"`
	IsLoggedIn       bool       `json:"isLoggedIn"` // Best-effort session flag, cleared on logout.
	OTP              string     `json:"-"`
	OTPExpiresAt     *time.Time `json:"-"`
	IsOTPVerified    bool       `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Session represents the single active login session of a user.
//
// A new login replaces any previous session row, so one account can only
// hold one live refresh token at a time.
type Session struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	RefreshToken string    `json:"-"` // Mirror of the account's active token. Omitted for security.
	UserAgent    string    `json:"userAgent"`
	IPAddress    string    `json:"ipAddress"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelProfile is the public read model of a user viewed as a channel.
type ChannelProfile struct {
	ID                        string `json:"_id"`
	FullName                  string `json:"fullName"`
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// HistoryOwner is the channel summary embedded in a watch-history entry.
type HistoryOwner struct {
	ID               string `json:"_id"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
}

// WatchHistoryEntry is a video the user has watched, newest first.
type WatchHistoryEntry struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	CreatedAt   time.Time    `json:"createdAt"`
	WatchedAt   time.Time    `json:"watchedAt"`
	Owner       HistoryOwner `json:"owner"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the users domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "fullName"
	FieldAvatar          = "avatar"
	FieldCoverImage      = "coverImage"
	FieldToken           = "token"
	FieldIDToken         = "idToken"
	FieldOTP             = "otp"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
)
