// Copyright (c) 2026 VideoTube. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/constants"
	"github.com/videotube/videotube/internal/platform/ctxkey"
	"github.com/videotube/videotube/internal/platform/respond"
	"github.com/videotube/videotube/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AuthClaims, error)
}

// UserSource reports whether the account referenced by a token still exists.
// A signature check alone is not enough: a deleted account must not keep
// authenticating until its access token expires.
type UserSource interface {
	Exists(context context.Context, userID string) (bool, error)
}

// Authenticator bundles token verification with the account-existence check
// and produces the session middleware for the HTTP routers.
type Authenticator struct {
	verifier TokenVerifier
	users    UserSource
}

// NewAuthenticator creates an Authenticator from its two dependencies.
func NewAuthenticator(verifier TokenVerifier, users UserSource) *Authenticator {
	return &Authenticator{verifier: verifier, users: users}
}

// RequireUser extracts and verifies the JWT access token, rejecting the
// request when it is missing, invalid, or no longer backed by an account.
//
// # Flow
//  1. Read the token from the 'accessToken' cookie.
//  2. Fall back to the 'Authorization: Bearer <token>' header.
//  3. If absent, abort with HTTP 401.
//  4. Verify the JWT via [TokenVerifier]; on failure abort with HTTP 401
//     carrying the verification error message.
//  5. Confirm the account still exists via [UserSource]; a token for a
//     deleted account aborts with HTTP 401.
//  6. Inject [*sec.AuthClaims] into the request context for downstream use.
func (authenticator *Authenticator) RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr := extractToken(request)
			if tokenStr == "" {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized request"))
				return
			}

			claims, err := authenticator.verifier.VerifyAccessToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized(err.Error()))
				return
			}

			exists, err := authenticator.users.Exists(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if !exists {
				respond.Error(writer, request, apperr.Unauthorized("Invalid accessToken"))
				return
			}

			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// OptionalUser attaches [*sec.AuthClaims] to the context when a valid access
// token is present, and lets anonymous requests through untouched. Invalid
// tokens, and tokens whose account is gone, are also treated as anonymous
// rather than rejected, so public pages keep working for visitors with stale
// cookies.
func (authenticator *Authenticator) OptionalUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr := extractToken(request)
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := authenticator.verifier.VerifyAccessToken(tokenStr)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			exists, err := authenticator.users.Exists(request.Context(), claims.UserID)
			if err != nil || !exists {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken pulls the access token from the cookie first, then the
// Authorization header. The cookie wins because browsers send it on every
// request while the header is reserved for non-browser API clients.
func extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUser retrieves the [*sec.AuthClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.AuthClaims] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
