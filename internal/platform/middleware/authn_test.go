// Copyright (c) 2026 VideoTube. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/middleware"
	"github.com/videotube/videotube/internal/platform/sec"
)

// stubVerifier accepts exactly one token string and rejects everything else.
type stubVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (s *stubVerifier) VerifyAccessToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == s.validToken {
		return s.claims, nil
	}
	return nil, errors.New("token is expired")
}

// stubUserSource knows a fixed set of live account IDs.
type stubUserSource struct {
	ids map[string]bool
}

func (s *stubUserSource) Exists(_ context.Context, userID string) (bool, error) {
	return s.ids[userID], nil
}

func newTestAuthenticator(verifier *stubVerifier, liveIDs ...string) *middleware.Authenticator {
	source := &stubUserSource{ids: map[string]bool{}}
	for _, id := range liveIDs {
		source.ids[id] = true
	}
	return middleware.NewAuthenticator(verifier, source)
}

func newEchoHandler(t *testing.T, captured **sec.AuthClaims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser_MissingToken(t *testing.T) {
	verifier := &stubVerifier{validToken: "good", claims: &sec.AuthClaims{UserID: "u1"}}
	authenticator := newTestAuthenticator(verifier, "u1")

	var captured *sec.AuthClaims
	handler := authenticator.RequireUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Unauthorized request")
	assert.Nil(t, captured)
}

func TestRequireUser_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{validToken: "good"}
	authenticator := newTestAuthenticator(verifier, "u1")

	var captured *sec.AuthClaims
	handler := authenticator.RequireUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.AddCookie(&http.Cookie{Name: "accessToken", Value: "tampered"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// The verification failure reason travels to the client.
	assert.Contains(t, recorder.Body.String(), "token is expired")
}

func TestRequireUser_DeletedAccountRejected(t *testing.T) {
	verifier := &stubVerifier{validToken: "good", claims: &sec.AuthClaims{UserID: "gone-user"}}

	// The token is cryptographically valid but no account backs it anymore.
	authenticator := newTestAuthenticator(verifier)

	var captured *sec.AuthClaims
	handler := authenticator.RequireUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.AddCookie(&http.Cookie{Name: "accessToken", Value: "good"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid accessToken")
	assert.Nil(t, captured)
}

func TestRequireUser_CookieToken(t *testing.T) {
	verifier := &stubVerifier{validToken: "good", claims: &sec.AuthClaims{UserID: "u1", Username: "jane"}}
	authenticator := newTestAuthenticator(verifier, "u1")

	var captured *sec.AuthClaims
	handler := authenticator.RequireUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.AddCookie(&http.Cookie{Name: "accessToken", Value: "good"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "u1", captured.UserID)
}

func TestRequireUser_BearerFallback(t *testing.T) {
	verifier := &stubVerifier{validToken: "good", claims: &sec.AuthClaims{UserID: "u2"}}
	authenticator := newTestAuthenticator(verifier, "u2")

	var captured *sec.AuthClaims
	handler := authenticator.RequireUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "u2", captured.UserID)
}

func TestOptionalUser_AnonymousPassesThrough(t *testing.T) {
	verifier := &stubVerifier{validToken: "good"}
	authenticator := newTestAuthenticator(verifier)

	var captured *sec.AuthClaims
	handler := authenticator.OptionalUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/public", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

func TestOptionalUser_StaleTokenTreatedAsAnonymous(t *testing.T) {
	verifier := &stubVerifier{validToken: "good"}
	authenticator := newTestAuthenticator(verifier)

	var captured *sec.AuthClaims
	handler := authenticator.OptionalUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/public", nil)
	request.AddCookie(&http.Cookie{Name: "accessToken", Value: "expired"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

func TestOptionalUser_DeletedAccountTreatedAsAnonymous(t *testing.T) {
	verifier := &stubVerifier{validToken: "good", claims: &sec.AuthClaims{UserID: "gone-user"}}
	authenticator := newTestAuthenticator(verifier)

	var captured *sec.AuthClaims
	handler := authenticator.OptionalUser()(newEchoHandler(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/public", nil)
	request.AddCookie(&http.Cookie{Name: "accessToken", Value: "good"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}
