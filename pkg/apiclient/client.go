// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package apiclient is the Go SDK for the VideoTube API.

# Overview

It mirrors the behavior of the browser client: auth tokens travel in cookies
held by a jar, every response is unwrapped from the standard envelope, and a
response interceptor transparently refreshes an expired access token and
replays the failing request exactly once. Concurrent refreshes triggered by
simultaneously failing requests are coalesced into a single refresh call.

# Usage

	client, err := apiclient.New("https://api.videotube.example/api/v1")
	if err != nil {
		...
	}
	user, err := client.Login(ctx, apiclient.LoginInput{Email: email, Password: password})
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"
)

// silentAuthHeader marks a request whose authorization failure must not
// trigger refresh or a login redirect. Transport metadata only; the server
// ignores it.
const silentAuthHeader = "x-silent-auth"

// refreshTokenCookieName matches the cookie the server issues on login.
const refreshTokenCookieName = "refreshToken"

// # Errors

// APIError is a failure envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (apiError *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", apiError.StatusCode, apiError.Message)
}

// messageOf extracts the user-facing message from an SDK error.
func messageOf(err error) string {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.Message
	}
	return err.Error()
}

// # Client

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached when the client does not carry one.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// WithNavigate sets the callback invoked with "/login" when a refresh attempt
// fails. Browser-embedded callers map it to a location change; servers and
// tests record it.
func WithNavigate(navigate func(location string)) Option {
	return func(client *Client) { client.navigate = navigate }
}

// Client talks to the VideoTube API.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	state        *State
	navigate     func(location string)
	refreshGroup singleflight.Group
}

/*
New builds a client rooted at baseURL, which must include the API prefix
(for example "https://api.videotube.example/api/v1").

Parameters:
  - baseURL: Absolute URL of the API root
  - options: Optional overrides

Returns:
  - *Client: The configured client
  - error: Invalid base URL
*/
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient_parse_base_url_failed: %w", err)
	}

	client := &Client{
		baseURL:  parsed,
		state:    NewState(),
		navigate: func(string) {},
	}
	for _, option := range options {
		option(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.httpClient.Jar == nil {
		jar, jarErr := cookiejar.New(nil)
		if jarErr != nil {
			return nil, fmt.Errorf("apiclient_cookie_jar_failed: %w", jarErr)
		}
		client.httpClient.Jar = jar
	}
	return client, nil
}

// State exposes the client's auth state for readers.
func (client *Client) State() *State {
	return client.state
}

// # Request Plumbing

// call is one outgoing request. The body is kept as bytes so the interceptor
// can replay it after a token refresh.
type call struct {
	route       Route
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	silent      bool
	retried     bool
}

// envelope is the uniform response shape of the API.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// jsonCall builds a JSON-bodied call.
func jsonCall(route Route, method, path string, payload any) (call, error) {
	request := call{route: route, method: method, path: path}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return call{}, fmt.Errorf("apiclient_encode_body_failed: %w", err)
		}
		request.body = body
		request.contentType = "application/json"
	}
	return request, nil
}

// multipartCall builds a multipart call from text fields and file uploads.
func multipartCall(route Route, method, path string, fields map[string]string, files []FileUpload) (call, error) {
	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)

	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return call{}, fmt.Errorf("apiclient_write_form_field_failed: %w", err)
		}
	}
	for _, file := range files {
		part, err := form.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return call{}, fmt.Errorf("apiclient_create_form_file_failed: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return call{}, fmt.Errorf("apiclient_write_form_file_failed: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return call{}, fmt.Errorf("apiclient_close_form_failed: %w", err)
	}

	return call{
		route:       route,
		method:      method,
		path:        path,
		body:        buffer.Bytes(),
		contentType: form.FormDataContentType(),
	}, nil
}

// send performs one HTTP round trip and decodes the response envelope.
func (client *Client) send(ctx context.Context, request call) (int, *envelope, error) {
	target := *client.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + request.path
	if len(request.query) > 0 {
		target.RawQuery = request.query.Encode()
	}

	var body io.Reader
	if request.body != nil {
		body = bytes.NewReader(request.body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.method, target.String(), body)
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient_build_request_failed: %w", err)
	}
	if request.contentType != "" {
		httpRequest.Header.Set("Content-Type", request.contentType)
	}
	if request.silent {
		httpRequest.Header.Set(silentAuthHeader, "true")
	}

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return 0, nil, fmt.Errorf("apiclient_request_failed: %w", err)
	}
	defer httpResponse.Body.Close()

	response := &envelope{}
	if decodeErr := json.NewDecoder(httpResponse.Body).Decode(response); decodeErr != nil {
		if httpResponse.StatusCode < http.StatusBadRequest {
			return httpResponse.StatusCode, nil, fmt.Errorf("apiclient_decode_envelope_failed: %w", decodeErr)
		}
		// Error bodies that are not the standard envelope still surface
		// as an APIError with the bare status.
		response.Message = http.StatusText(httpResponse.StatusCode)
	}
	return httpResponse.StatusCode, response, nil
}

/*
do executes a call through the response interceptor.

On an error response it applies, in order, the exemptions that propagate the
error untouched: silent request, the refresh endpoint itself, the current-user
endpoint, an already-retried request, a public route, a non-401 status, and a
caller with no refresh cookie (a guest has nothing to refresh). If none
apply, the request is marked retried, one refresh is attempted, and on
success the original call is replayed. On refresh failure the navigate
callback receives "/login" and the refresh error propagates.
*/
func (client *Client) do(ctx context.Context, request call, out any) (*envelope, error) {
	for {
		status, response, err := client.send(ctx, request)
		if err != nil {
			return nil, err
		}

		if status < http.StatusBadRequest {
			if out != nil && len(response.Data) > 0 && string(response.Data) != "null" {
				if err := json.Unmarshal(response.Data, out); err != nil {
					return nil, fmt.Errorf("apiclient_decode_data_failed: %w", err)
				}
			}
			return response, nil
		}

		apiError := &APIError{StatusCode: status, Message: response.Message}

		switch {
		case request.silent:
			return nil, apiError
		case request.route == RouteRefreshToken:
			return nil, apiError
		case request.route == RouteCurrentUser:
			return nil, apiError
		case request.retried:
			return nil, apiError
		case publicRoutes[request.route]:
			return nil, apiError
		case status != http.StatusUnauthorized:
			return nil, apiError
		case !client.hasRefreshCookie():
			return nil, apiError
		}

		request.retried = true
		if refreshErr := client.refresh(ctx); refreshErr != nil {
			client.navigate("/login")
			return nil, refreshErr
		}
	}
}

// refresh exchanges the refresh cookie for a new token pair. Concurrent
// callers share one in-flight request; the group key is cleared on settle.
func (client *Client) refresh(ctx context.Context) error {
	_, err, _ := client.refreshGroup.Do("refresh-token", func() (any, error) {
		status, response, sendErr := client.send(ctx, call{
			route:  RouteRefreshToken,
			method: http.MethodPost,
			path:   "/users/refresh-token",
		})
		if sendErr != nil {
			return nil, sendErr
		}
		if status >= http.StatusBadRequest {
			return nil, &APIError{StatusCode: status, Message: response.Message}
		}
		return nil, nil
	})
	if err != nil {
		client.state.guest()
	}
	return err
}

// hasRefreshCookie reports whether the jar holds a refresh token for the API
// origin.
func (client *Client) hasRefreshCookie() bool {
	for _, cookie := range client.httpClient.Jar.Cookies(client.baseURL) {
		if cookie.Name == refreshTokenCookieName && cookie.Value != "" {
			return true
		}
	}
	return false
}
