// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers, token lifetimes and cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "videotube-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Kept generous because video and image uploads arrive as multipart bodies.
	DefaultReadTimeout = 5 * time.Minute

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 5 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// GlobalRequestTimeout is the deadline for a non-upload request lifecycle.
	// It also caps per-connection statement time in PostgreSQL.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "videotube.app"

	// AccessTokenTTL is the lifetime of a short-lived access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a long-lived refresh token.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// EmailVerifyTokenTTL is the lifetime of a verification-link token.
	EmailVerifyTokenTTL = 10 * time.Minute

	// OTPTTL is the validity window of a password-reset OTP.
	OTPTTL = 10 * time.Minute

	// AccessTokenCookieName is the name of the cookie that carries the access token.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName is the name of the cookie that carries the refresh token.
	RefreshTokenCookieName = "refreshToken"

	// SilentAuthHeader suppresses client-side redirect handling for probe requests.
	SilentAuthHeader = "x-silent-auth"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
)

// # Uploads

const (
	// MaxUploadBytes caps the size of a multipart upload body (video + thumbnail).
	MaxUploadBytes = 200 << 20

	// MaxImageUploadBytes caps the size of avatar and cover image uploads.
	MaxImageUploadBytes = 10 << 20
)

// # Database Schemas

const (
	SchemaCore   = "core"
	SchemaUsers  = "users"
	SchemaSocial = "social"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResendCooldown = "auth:resend_cooldown:"
	RedisPrefixChannelStats   = "dashboard:stats:"
)

// # Caching

const (
	// ChannelStatsCacheTTL is how long dashboard aggregates may be served stale.
	ChannelStatsCacheTTL = 60 * time.Second
)
