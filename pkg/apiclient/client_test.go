// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/pkg/apiclient"
)

// apiStub simulates the API's auth surface: login issues a token pair as
// cookies, refresh rotates the access token, and protected endpoints reject
// any stale access cookie with a 401.
type apiStub struct {
	mux    *http.ServeMux
	server *httptest.Server

	mu            sync.Mutex
	validToken    string
	refreshCalls  atomic.Int32
	refreshFails  bool
	refreshIssues string
	refreshDelay  time.Duration
}

func newAPIStub(t *testing.T) *apiStub {
	t.Helper()

	stub := &apiStub{mux: http.NewServeMux()}

	stub.mux.HandleFunc("POST /api/v1/users/login", func(writer http.ResponseWriter, request *http.Request) {
		stub.setValidToken("token-1")
		stub.setAuthCookies(writer, "token-1")
		writeEnvelope(writer, http.StatusOK, map[string]any{
			"user": map[string]any{"_id": "user-1", "username": "margiela", "email": "m@example.com"},
		}, "Welcome back margiela")
	})

	stub.mux.HandleFunc("POST /api/v1/users/refresh-token", func(writer http.ResponseWriter, request *http.Request) {
		stub.refreshCalls.Add(1)
		if stub.refreshDelay > 0 {
			time.Sleep(stub.refreshDelay)
		}
		if stub.refreshFails {
			writeEnvelope(writer, http.StatusUnauthorized, nil, "Invalid refresh token")
			return
		}
		issued := stub.currentToken()
		if stub.refreshIssues != "" {
			issued = stub.refreshIssues
		}
		stub.setAuthCookies(writer, issued)
		writeEnvelope(writer, http.StatusOK, nil, "Access token refreshed successfully")
	})

	stub.server = httptest.NewServer(stub.mux)
	t.Cleanup(stub.server.Close)
	return stub
}

func (stub *apiStub) client(t *testing.T, options ...apiclient.Option) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(stub.server.URL+"/api/v1", options...)
	require.NoError(t, err)
	return client
}

// expireAccess invalidates every access cookie issued so far. The next
// refresh hands out the new valid token.
func (stub *apiStub) expireAccess(next string) {
	stub.setValidToken(next)
}

func (stub *apiStub) setValidToken(token string) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.validToken = token
}

func (stub *apiStub) currentToken() string {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.validToken
}

func (stub *apiStub) setAuthCookies(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{Name: "accessToken", Value: token, Path: "/"})
	http.SetCookie(writer, &http.Cookie{Name: "refreshToken", Value: "refresh-" + token, Path: "/"})
}

// authorized reports whether the request carries the currently valid access
// cookie.
func (stub *apiStub) authorized(request *http.Request) bool {
	cookie, err := request.Cookie("accessToken")
	return err == nil && cookie.Value == stub.currentToken()
}

// protect registers a handler behind the access-cookie check and counts its
// invocations.
func (stub *apiStub) protect(pattern string, calls *atomic.Int32, handler http.HandlerFunc) {
	stub.mux.HandleFunc(pattern, func(writer http.ResponseWriter, request *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if !stub.authorized(request) {
			writeEnvelope(writer, http.StatusUnauthorized, nil, "Unauthorized request")
			return
		}
		handler(writer, request)
	})
}

func writeEnvelope(writer http.ResponseWriter, status int, data any, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{
		"statusCode": status,
		"data":       data,
		"message":    message,
		"success":    status < http.StatusBadRequest,
	})
}

// # Interceptor

func TestPublicRouteUnauthorizedPropagatesWithoutRefresh(t *testing.T) {
	stub := newAPIStub(t)
	stub.mux.HandleFunc("GET /api/v1/video/{videoId}", func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusUnauthorized, nil, "Unauthorized request")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = client.GetVideo(context.Background(), "123")

	var apiError *apiclient.APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusUnauthorized, apiError.StatusCode)
	assert.Equal(t, int32(0), stub.refreshCalls.Load())
}

func TestProtectedUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	stub := newAPIStub(t)
	var accountCalls atomic.Int32
	stub.protect("PATCH /api/v1/users/update-account", &accountCalls, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, map[string]any{
			"_id": "user-1", "username": "margiela", "fullName": "Updated Name",
		}, "Account details updated successfully")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	// The issued access cookie is now stale; only a refresh can recover.
	stub.expireAccess("token-2")

	user, err := client.UpdateAccount(context.Background(), apiclient.UpdateAccountInput{FullName: "Updated Name"})
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", user.FullName)
	assert.Equal(t, int32(1), stub.refreshCalls.Load())
	assert.Equal(t, int32(2), accountCalls.Load())
}

func TestRetryIsCappedAtOnePerRequest(t *testing.T) {
	stub := newAPIStub(t)
	var accountCalls atomic.Int32
	stub.protect("PATCH /api/v1/users/update-account", &accountCalls, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, nil, "Account details updated successfully")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	// Refresh succeeds but keeps issuing a cookie the server rejects, so the
	// replay fails too. The second 401 must propagate instead of looping.
	stub.expireAccess("token-2")
	stub.refreshIssues = "stale-token"

	_, err = client.UpdateAccount(context.Background(), apiclient.UpdateAccountInput{FullName: "Name"})

	var apiError *apiclient.APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusUnauthorized, apiError.StatusCode)
	assert.Equal(t, int32(1), stub.refreshCalls.Load())
	assert.Equal(t, int32(2), accountCalls.Load())
}

func TestRefreshFailureNavigatesToLogin(t *testing.T) {
	stub := newAPIStub(t)
	stub.protect("PATCH /api/v1/users/update-account", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, nil, "Account details updated successfully")
	})

	var navigatedTo string
	client := stub.client(t, apiclient.WithNavigate(func(location string) { navigatedTo = location }))

	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	stub.expireAccess("token-2")
	stub.refreshFails = true

	_, err = client.UpdateAccount(context.Background(), apiclient.UpdateAccountInput{FullName: "Name"})

	var apiError *apiclient.APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, "Invalid refresh token", apiError.Message)
	assert.Equal(t, "/login", navigatedTo)

	snap := client.State().Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
}

func TestGuestGetsNoRefreshAttempt(t *testing.T) {
	stub := newAPIStub(t)
	stub.protect("PATCH /api/v1/users/update-account", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, nil, "Account details updated successfully")
	})

	// No login, so the jar holds no refresh cookie.
	client := stub.client(t)
	_, err := client.UpdateAccount(context.Background(), apiclient.UpdateAccountInput{FullName: "Name"})

	var apiError *apiclient.APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusUnauthorized, apiError.StatusCode)
	assert.Equal(t, int32(0), stub.refreshCalls.Load())
}

func TestSilentRequestNeverRefreshes(t *testing.T) {
	stub := newAPIStub(t)
	var sawSilentHeader atomic.Bool
	stub.mux.HandleFunc("GET /api/v1/users/current-user", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("x-silent-auth") == "true" {
			sawSilentHeader.Store(true)
		}
		writeEnvelope(writer, http.StatusUnauthorized, nil, "Unauthorized request")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = client.GetCurrentUser(context.Background(), true)

	require.Error(t, err)
	assert.True(t, sawSilentHeader.Load())
	assert.Equal(t, int32(0), stub.refreshCalls.Load())
}

func TestConcurrentFailuresShareOneRefresh(t *testing.T) {
	stub := newAPIStub(t)
	stub.refreshDelay = 100 * time.Millisecond
	stub.protect("PATCH /api/v1/users/update-account", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, nil, "Account details updated successfully")
	})
	stub.protect("GET /api/v1/users/history", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, []any{}, "Watch History fetched successfully")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	stub.expireAccess("token-2")

	var group sync.WaitGroup
	errs := make([]error, 2)
	group.Add(2)
	go func() {
		defer group.Done()
		_, errs[0] = client.UpdateAccount(context.Background(), apiclient.UpdateAccountInput{FullName: "Name"})
	}()
	go func() {
		defer group.Done()
		_, errs[1] = client.GetWatchHistory(context.Background())
	}()
	group.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), stub.refreshCalls.Load())
}

// # Auth State

func TestLoginTransitionsState(t *testing.T) {
	stub := newAPIStub(t)
	client := stub.client(t)

	user, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "margiela", user.Username)

	snap := client.State().Snapshot()
	assert.Equal(t, apiclient.StatusSucceeded, snap.Status)
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "user-1", snap.User.ID)
}

func TestCurrentUserRejectionMeansGuest(t *testing.T) {
	stub := newAPIStub(t)
	stub.mux.HandleFunc("GET /api/v1/users/current-user", func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusUnauthorized, nil, "Unauthorized request")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = client.GetCurrentUser(context.Background(), false)
	require.Error(t, err)

	snap := client.State().Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Equal(t, int32(0), stub.refreshCalls.Load())
}

func TestLogoutClearsSession(t *testing.T) {
	stub := newAPIStub(t)
	stub.protect("POST /api/v1/users/logout", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, map[string]any{}, "User logged out")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, client.Logout(context.Background()))

	snap := client.State().Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
}

// # Bootstrap

func TestBootstrapRestoresSession(t *testing.T) {
	stub := newAPIStub(t)
	stub.protect("GET /api/v1/users/current-user", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, map[string]any{"_id": "user-1", "username": "margiela"}, "current user fetched successfully")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	user := client.Bootstrap(context.Background())

	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, client.State().Snapshot().IsAuthenticated)
}

func TestBootstrapGuestFallsThroughSilently(t *testing.T) {
	stub := newAPIStub(t)
	stub.refreshFails = true
	stub.mux.HandleFunc("GET /api/v1/users/current-user", func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusUnauthorized, nil, "Unauthorized request")
	})

	var navigatedTo string
	client := stub.client(t, apiclient.WithNavigate(func(location string) { navigatedTo = location }))

	user := client.Bootstrap(context.Background())

	assert.Nil(t, user)
	assert.Empty(t, navigatedTo)
	snap := client.State().Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
}

func TestBootstrapKeepsValidAccessTokenWhenRefreshExpired(t *testing.T) {
	stub := newAPIStub(t)
	stub.protect("GET /api/v1/users/current-user", nil, func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, http.StatusOK, map[string]any{"_id": "user-1", "username": "margiela"}, "current user fetched successfully")
	})

	client := stub.client(t)
	_, err := client.Login(context.Background(), apiclient.LoginInput{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)

	// The refresh token has expired server-side, but the access cookie from
	// login is still honored.
	stub.refreshFails = true

	user := client.Bootstrap(context.Background())

	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
}
