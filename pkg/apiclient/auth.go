// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// # Inputs

// RegisterInput carries the multipart signup form. Avatar is required,
// CoverImage is optional.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     FileUpload
	CoverImage *FileUpload
}

// LoginInput identifies the account by username or email.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload unwraps responses shaped as {"user": ...}.
type userPayload struct {
	User *User `json:"user"`
}

// # Account Lifecycle

/*
Register creates an unverified account. Registration does not sign the
caller in; the account stays locked until the emailed verification link is
followed.

Parameters:
  - context: Request-scoped context
  - input: Signup form fields and files

Returns:
  - *User: The created, unverified account
  - error: Validation failure, duplicate identity, or transport failure
*/
func (client *Client) Register(context context.Context, input RegisterInput) (*User, error) {
	client.state.begin()

	files := []FileUpload{input.Avatar}
	if input.CoverImage != nil {
		files = append(files, *input.CoverImage)
	}
	request, err := multipartCall(RouteRegister, http.MethodPost, "/users/register", map[string]string{
		"fullName": input.FullName,
		"email":    input.Email,
		"username": input.Username,
		"password": input.Password,
	}, files)
	if err != nil {
		client.state.fail(err.Error())
		return nil, err
	}

	user := &User{}
	if _, err := client.do(context, request, user); err != nil {
		client.state.fail(messageOf(err))
		return nil, err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.User = user
		snap.IsAuthenticated = false
	})
	return user, nil
}

// VerifyEmail consumes an emailed verification token. The first call unlocks
// the account and signs the caller in; repeat calls succeed without side
// effects.
func (client *Client) VerifyEmail(context context.Context, token string) (*User, error) {
	client.state.begin()

	request := call{route: RouteVerifyEmail, method: http.MethodGet, path: "/users/verify-email/" + url.PathEscape(token)}
	payload := userPayload{}
	if _, err := client.do(context, request, &payload); err != nil {
		client.state.fail(messageOf(err))
		return nil, err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.EmailVerified = true
		snap.IsAuthenticated = true
		if payload.User != nil {
			snap.User = payload.User
		}
	})
	return payload.User, nil
}

// ResendVerification requests a fresh verification email for an unverified
// account.
func (client *Client) ResendVerification(context context.Context, email string) error {
	client.state.begin()

	request, err := jsonCall(RouteResendVerification, http.MethodPost, "/users/resend-verification-email", map[string]string{"email": email})
	if err != nil {
		client.state.fail(err.Error())
		return err
	}
	if _, err := client.do(context, request, nil); err != nil {
		client.state.fail(messageOf(err))
		return err
	}

	client.state.update(func(snap *Snapshot) { snap.Status = StatusSucceeded })
	return nil
}

/*
Login signs in with a username or email plus password.

Returns:
  - *User: The signed-in account
  - error: Bad credentials, unverified account (403), or a Google-linked
    account that has no password (400)
*/
func (client *Client) Login(context context.Context, input LoginInput) (*User, error) {
	client.state.begin()

	request, err := jsonCall(RouteLogin, http.MethodPost, "/users/login", input)
	if err != nil {
		client.state.fail(err.Error())
		return nil, err
	}

	payload := userPayload{}
	if _, err := client.do(context, request, &payload); err != nil {
		client.state.fail(messageOf(err))
		return nil, err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.User = payload.User
		snap.IsAuthenticated = true
	})
	return payload.User, nil
}

// GoogleLogin signs in with a Google ID token, creating the account on first
// use.
func (client *Client) GoogleLogin(context context.Context, idToken string) (*User, error) {
	client.state.begin()

	request, err := jsonCall(RouteGoogleLogin, http.MethodPost, "/users/googleLogin", map[string]string{"idToken": idToken})
	if err != nil {
		client.state.fail(err.Error())
		return nil, err
	}

	payload := userPayload{}
	if _, err := client.do(context, request, &payload); err != nil {
		client.state.fail(messageOf(err))
		return nil, err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.User = payload.User
		snap.IsAuthenticated = true
	})
	return payload.User, nil
}

// Logout revokes the refresh token server-side and clears the local session.
func (client *Client) Logout(context context.Context) error {
	client.state.begin()

	request, err := jsonCall(RouteLogout, http.MethodPost, "/users/logout", nil)
	if err != nil {
		client.state.fail(err.Error())
		return err
	}
	if _, err := client.do(context, request, nil); err != nil {
		client.state.fail(messageOf(err))
		return err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.User = nil
		snap.IsAuthenticated = false
		snap.Loading = false
	})
	return nil
}

// RefreshToken rotates the token pair using the refresh cookie. A rejection
// forces the local session back to guest.
func (client *Client) RefreshToken(context context.Context) error {
	client.state.begin()
	if err := client.refresh(context); err != nil {
		client.state.fail(messageOf(err))
		return err
	}
	client.state.update(func(snap *Snapshot) { snap.Status = StatusSucceeded })
	return nil
}

/*
GetCurrentUser fetches the signed-in account.

A rejection is the canonical way the state learns the visitor is a guest: the
user is cleared and IsAuthenticated drops to false. In silent mode the
request carries the sentinel header so the interceptor neither refreshes nor
redirects, and the failure is not recorded as an error.
*/
func (client *Client) GetCurrentUser(context context.Context, silent bool) (*User, error) {
	client.state.begin()

	user := &User{}
	request := call{route: RouteCurrentUser, method: http.MethodGet, path: "/users/current-user", silent: silent}
	if _, err := client.do(context, request, user); err != nil {
		client.state.guest()
		if !silent {
			client.state.fail(messageOf(err))
		}
		return nil, err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.Loading = false
		snap.User = user
		snap.IsAuthenticated = true
	})
	return user, nil
}

// # Password Recovery

// ForgotPassword sends a one-time code to the account's email.
func (client *Client) ForgotPassword(context context.Context, email string) error {
	client.state.begin()

	request, err := jsonCall(RouteForgotPassword, http.MethodPost, "/users/forgot-password", map[string]string{"email": email})
	if err != nil {
		client.state.fail(err.Error())
		return err
	}
	if _, err := client.do(context, request, nil); err != nil {
		client.state.fail(messageOf(err))
		return err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.OTPSent = true
	})
	return nil
}

// VerifyOTP checks the emailed one-time code, unlocking a single password
// reset.
func (client *Client) VerifyOTP(context context.Context, email, otp string) error {
	client.state.begin()

	request, err := jsonCall(RouteVerifyOTP, http.MethodPost, "/users/verify-otp/"+url.PathEscape(email), map[string]string{"otp": otp})
	if err != nil {
		client.state.fail(err.Error())
		return err
	}
	if _, err := client.do(context, request, nil); err != nil {
		client.state.fail(messageOf(err))
		return err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.OTPVerified = true
	})
	return nil
}

// ResetPassword replaces the password after a successful OTP verification.
// The verification is consumed; a second reset needs a fresh code.
func (client *Client) ResetPassword(context context.Context, email, newPassword, confirmPassword string) error {
	client.state.begin()

	request, err := jsonCall(RouteResetPassword, http.MethodPost, "/users/reset-password/"+url.PathEscape(email), map[string]string{
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	})
	if err != nil {
		client.state.fail(err.Error())
		return err
	}
	if _, err := client.do(context, request, nil); err != nil {
		client.state.fail(messageOf(err))
		return err
	}

	client.state.update(func(snap *Snapshot) {
		snap.Status = StatusSucceeded
		snap.PasswordChanged = true
		snap.OTPSent = false
		snap.OTPVerified = false
	})
	return nil
}

// # Profile

// UpdateAccountInput carries the editable profile fields. Empty fields keep
// their stored value; at least one must be set.
type UpdateAccountInput struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateAccount changes the profile details of the signed-in user.
func (client *Client) UpdateAccount(context context.Context, input UpdateAccountInput) (*User, error) {
	request, err := jsonCall(RouteUpdateAccount, http.MethodPatch, "/users/update-account", input)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if _, err := client.do(context, request, user); err != nil {
		return nil, err
	}
	client.state.update(func(snap *Snapshot) { snap.User = user })
	return user, nil
}

// UpdateAvatar replaces the signed-in user's avatar image.
func (client *Client) UpdateAvatar(context context.Context, avatar FileUpload) (*User, error) {
	return client.updateImage(context, RouteUpdateAvatar, "/users/avatar", "avatar", avatar)
}

// UpdateCoverImage replaces the signed-in user's channel banner.
func (client *Client) UpdateCoverImage(context context.Context, coverImage FileUpload) (*User, error) {
	return client.updateImage(context, RouteUpdateCoverImage, "/users/cover-image", "coverImage", coverImage)
}

func (client *Client) updateImage(context context.Context, route Route, path, fieldName string, file FileUpload) (*User, error) {
	file.FieldName = fieldName
	request, err := multipartCall(route, http.MethodPatch, path, nil, []FileUpload{file})
	if err != nil {
		return nil, err
	}

	user := &User{}
	if _, err := client.do(context, request, user); err != nil {
		return nil, err
	}
	client.state.update(func(snap *Snapshot) { snap.User = user })
	return user, nil
}

// GetChannelProfile fetches a channel page by username, including the
// caller's subscription relationship.
func (client *Client) GetChannelProfile(context context.Context, username string) (*ChannelProfile, error) {
	profile := &ChannelProfile{}
	request := call{route: RouteChannelProfile, method: http.MethodGet, path: "/users/channel/" + url.PathEscape(username)}
	if _, err := client.do(context, request, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// # Watch History

// GetWatchHistory lists the signed-in user's watched videos, newest first.
func (client *Client) GetWatchHistory(context context.Context) ([]WatchHistoryEntry, error) {
	entries := []WatchHistoryEntry{}
	request := call{route: RouteWatchHistory, method: http.MethodGet, path: "/users/history"}
	if _, err := client.do(context, request, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveFromWatchHistory drops one video from the watch history.
func (client *Client) RemoveFromWatchHistory(context context.Context, videoID string) error {
	request := call{route: RouteRemoveHistory, method: http.MethodDelete, path: "/users/history/" + url.PathEscape(videoID)}
	_, err := client.do(context, request, nil)
	return err
}
