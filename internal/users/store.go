// Copyright (c) 2026 VideoTube. All rights reserved.

package users

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		ExistsByEmailOrUsername reports whether an account already claims
		either identity.

		Parameters:
		  - context: context.Context
		  - email: string
		  - username: string

		Returns:
		  - bool: True when a matching row exists
		  - error: Database retrieval failures
	*/
	ExistsByEmailOrUsername(context context.Context, email, username string) (bool, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Delete removes an account and everything cascading from it. Used to
		undo a registration whose verification mail could not be sent.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) error

	/*
		Update persists changes to mutable profile fields
		(fullName, username, email).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdateAvatar replaces only the avatar URL of the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - avatarURL: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateAvatar(context context.Context, userID, avatarURL string) error

	/*
		UpdateCoverImage replaces only the cover image URL of the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - coverImageURL: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateCoverImage(context context.Context, userID, coverImageURL string) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetRefreshToken stores the single active refresh token for the user
		and keeps the isLoggedIn flag in step with the slot. An empty token
		clears both, revoking the session.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - refreshToken: string

		Returns:
		  - error: Persistence failures
	*/
	SetRefreshToken(context context.Context, userID, refreshToken string) error

	/*
		MarkVerified updates the user's status to isverified = true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, userID string) error

	/*
		SetOTP stores a password-recovery OTP and its expiry on the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - otp: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetOTP(context context.Context, userID, otp string, expiresAt time.Time) error

	/*
		MarkOTPVerified consumes the OTP and flags the account as cleared
		for a password reset.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkOTPVerified(context context.Context, userID string) error

	/*
		ClearOTP wipes any OTP state from the account.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearOTP(context context.Context, userID string) error

	/*
		ChannelProfile builds the public channel read model for a username,
		including subscriber counts and whether viewerID subscribes to it.
		viewerID may be empty for anonymous viewers.

		Parameters:
		  - context: context.Context
		  - username: string
		  - viewerID: string

		Returns:
		  - *ChannelProfile: Aggregated channel view
		  - error: apperr.NotFound or database retrieval failures
	*/
	ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error)

	/*
		WatchHistory returns the user's watched videos, newest first, with
		each video's owner summary embedded.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []WatchHistoryEntry: Ordered history
		  - error: Database retrieval failures
	*/
	WatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error)

	/*
		RemoveFromWatchHistory deletes one video from the user's history.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - videoID: string

		Returns:
		  - error: Persistence failures
	*/
	RemoveFromWatchHistory(context context.Context, userID, videoID string) error
}

// # Session Data Access

// SessionRepository tracks the single active login session per user.
type SessionRepository interface {

	// Replace removes any existing session rows for session.UserID and
	// records the new one. Logins are exclusive per account.
	Replace(context context.Context, session *Session) error

	// DeleteAllForUser removes every session row for the user.
	DeleteAllForUser(context context.Context, userID string) error
}

// # Volatile Data Access

// CooldownRepository throttles repeatable side effects such as
// verification-email resends. Backed by Redis TTL keys.
type CooldownRepository interface {

	// AcquireResendSlot returns true when the email is allowed to trigger
	// another verification mail, and starts the cooldown window.
	AcquireResendSlot(context context.Context, email string, ttl time.Duration) (bool, error)
}
