// Copyright (c) 2026 VideoTube. All rights reserved.

/*
HTTP delivery layer for the users domain.

It implements the gateway for the account lifecycle, from registration and
email verification to session refresh and channel profile reads.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface plus multipart uploads.
  - Security: Handles JWT orchestration and HttpOnly cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes,
headers, cookies, JSON).
*/
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/constants"
	"github.com/videotube/videotube/internal/platform/middleware"
	requestutil "github.com/videotube/videotube/internal/platform/request"
	"github.com/videotube/videotube/internal/platform/respond"
	"github.com/videotube/videotube/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the user-facing HTTP endpoints.
type Handler struct {
	userService   *Service
	authenticator *middleware.Authenticator
}

// NewHandler constructs a new [Handler] with its service dependency and the
// authenticator backing the route-level session middleware.
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{userService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] with the full users surface.
//
// # Endpoints
//
// Public: register, verify-email, resend-verification-email, login,
// googleLogin, forgot-password, verify-otp, reset-password, refresh-token.
// Protected: logout, current-user, update-account, avatar, cover-image,
// channel, history.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Get("/verify-email/{token}", handler.verifyEmail)
	router.Post("/resend-verification-email", handler.resendVerification)
	router.Post("/login", handler.login)
	router.Post("/googleLogin", handler.googleLogin)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/verify-otp/{email}", handler.verifyOTP)
	router.Post("/reset-password/{email}", handler.resetPassword)
	router.Post("/refresh-token", handler.refreshToken)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.authenticator.RequireUser())
		r.Post("/logout", handler.logout)
		r.Get("/current-user", handler.currentUser)
		r.Patch("/update-account", handler.updateAccount)
		r.Patch("/avatar", handler.updateAvatar)
		r.Patch("/cover-image", handler.updateCoverImage)
		r.Get("/channel/{username}", handler.channelProfile)
		r.Get("/history", handler.watchHistory)
		r.Delete("/history/{videoId}", handler.removeFromHistory)
	})

	return router
}

// # Cookie Management

// authCookie builds the shared cookie profile for auth tokens.
//
// SameSite=None with Partitioned keeps the cookies working when the frontend
// and the API live on different sites, including Chrome's privacy sandbox.
func authCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:        name,
		Value:       value,
		Path:        "/",
		MaxAge:      maxAge,
		Secure:      true,
		HttpOnly:    true,
		SameSite:    http.SameSiteNoneMode,
		Partitioned: true,
	}
}

// setAuthCookies attaches a fresh token pair to the response.
func setAuthCookies(writer http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(writer, authCookie(
		constants.AccessTokenCookieName, accessToken, int(constants.AccessTokenTTL.Seconds()),
	))
	http.SetCookie(writer, authCookie(
		constants.RefreshTokenCookieName, refreshToken, int(constants.RefreshTokenTTL.Seconds()),
	))
}

// clearAuthCookies expires both token cookies on the client.
func clearAuthCookies(writer http.ResponseWriter) {
	http.SetCookie(writer, authCookie(constants.AccessTokenCookieName, "", -1))
	http.SetCookie(writer, authCookie(constants.RefreshTokenCookieName, "", -1))
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type verifyOTPRequest struct {
	OTP string `json:"otp"`
}

type resetPasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
register creates a new user account from a multipart form.

POST /api/v1/users/register

Request:
  - Multipart form: fullName, email, username, password
  - Files: avatar (required), coverImage (optional)

Response:
  - 201: User: Created account (unverified)
  - 400: Missing fields or avatar
  - 409: User with email or username already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes*2)

	avatarFile, avatarHeader, err := requestutil.FormFile(request, FieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if avatarFile != nil {
		defer avatarFile.Close()
	}

	coverFile, coverHeader, err := requestutil.FormFile(request, FieldCoverImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if coverFile != nil {
		defer coverFile.Close()
	}

	input := RegisterInput{
		FullName: request.FormValue(FieldFullName),
		Email:    request.FormValue(FieldEmail),
		Username: request.FormValue(FieldUsername),
		Password: request.FormValue(FieldPassword),
	}
	if avatarFile != nil {
		input.Avatar = avatarFile
		input.AvatarFilename = avatarHeader.Filename
	}
	if coverFile != nil {
		input.CoverImage = coverFile
		input.CoverImageFilename = coverHeader.Filename
	}

	user, err := handler.userService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user, "User registered Successfully")
}

/*
verifyEmail confirms email ownership via a signed link token.

GET /api/v1/users/verify-email/{token}

Response:
  - 200: Verified user plus auth cookies, or "Email already verified"
  - 400: Verification link expired or invalid
  - 404: User not found
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Param(request, FieldToken)

	result, err := handler.userService.VerifyEmail(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.AlreadyVerified {
		respond.OK(writer, nil, "Email already verified")
		return
	}

	setAuthCookies(writer, result.AccessToken, result.RefreshToken)
	respond.OK(writer, map[string]any{"user": result.User}, "Email verified successfully")
}

// resendVerification triggers a fresh verification mail for an unverified account.
//
// POST /api/v1/users/resend-verification-email
func (handler *Handler) resendVerification(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.userService.ResendVerification(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Verification email resent successfully")
}

/*
login authenticates with username/email and password.

POST /api/v1/users/login

Request:
  - Body: loginRequest (Username or Email, Password)

Response:
  - 200: User profile plus auth cookies
  - 400: Bad credentials or Google-linked account
  - 403: Verify your account before login
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.userService.Login(request.Context(), LoginInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: getClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookies(writer, session.AccessToken, session.RefreshToken)
	respond.OK(writer, map[string]any{
		"user": session.User,
	}, "Welcome back "+session.User.Username)
}

/*
googleLogin authenticates through a Google ID token.

POST /api/v1/users/googleLogin

Request:
  - Body: googleLoginRequest (IDToken)

Response:
  - 200: User profile, tokens, and auth cookies
  - 400: Missing idToken or unusable Google profile
  - 401: Google token verification failed
*/
func (handler *Handler) googleLogin(writer http.ResponseWriter, request *http.Request) {
	var input googleLoginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.userService.GoogleLogin(request.Context(), GoogleLoginInput{
		IDToken:   input.IDToken,
		UserAgent: request.UserAgent(),
		IPAddress: getClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookies(writer, session.AccessToken, session.RefreshToken)
	respond.OK(writer, map[string]any{
		"user":         session.User,
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
	}, "Google Login Successful")
}

// logout revokes the stored refresh token and clears the auth cookies.
//
// POST /api/v1/users/logout
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearAuthCookies(writer)
	respond.OK(writer, map[string]any{}, "User logged out")
}

/*
refreshToken rotates the session credentials.

POST /api/v1/users/refresh-token

Description: Accepts the refresh token from the cookie or, as a fallback,
from the JSON body. Issues a new cookie pair on success.

Response:
  - 200: Fresh cookies, data null
  - 401: Missing, invalid, or already-rotated token
*/
func (handler *Handler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	incomingToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		incomingToken = cookie.Value
	}
	if incomingToken == "" {
		var input refreshRequest
		if err := requestutil.DecodeJSON(request, &input); err == nil {
			incomingToken = input.RefreshToken
		}
	}

	if incomingToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Unauthorized request - refresh token missing"))
		return
	}

	tokens, err := handler.userService.Refresh(request.Context(), incomingToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookies(writer, tokens.AccessToken, tokens.RefreshToken)
	respond.OK(writer, nil, "Access token refreshed successfully")
}

// forgotPassword mails a password-reset OTP to the account holder.
//
// POST /api/v1/users/forgot-password
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.userService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldEmail: input.Email}, "Otp send Successfully")
}

// verifyOTP checks a submitted OTP for the email in the path.
//
// POST /api/v1/users/verify-otp/{email}
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldEmail)

	var input verifyOTPRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.userService.VerifyOTP(request.Context(), email, input.OTP); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "OTP verified successfully")
}

/*
resetPassword completes the OTP recovery flow with a new password.

POST /api/v1/users/reset-password/{email}

Response:
  - 200: Password changed successfully
  - 400: Missing or mismatched passwords
  - 403: OTP verification required
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldEmail)

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err := handler.userService.ResetPassword(request.Context(), email, input.NewPassword, input.ConfirmPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Password changed successfully")
}

// currentUser returns the authenticated user's full profile.
//
// GET /api/v1/users/current-user
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.CurrentUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "current user fetched successfully")
}

// updateAccount modifies fullName, username, or email.
//
// PATCH /api/v1/users/update-account
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.userService.UpdateAccount(request.Context(), userID, UpdateAccountInput{
		FullName: input.FullName,
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Account details updated successfully")
}

// updateAvatar replaces the profile picture from a multipart upload.
//
// PATCH /api/v1/users/avatar
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes)

	file, header, err := requestutil.FormFile(request, FieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if file == nil {
		respond.Error(writer, request, apperr.BadRequest("Avatar file is missing"))
		return
	}
	defer file.Close()

	user, err := handler.userService.UpdateAvatar(request.Context(), userID, header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Avatar updated successfully")
}

// updateCoverImage replaces the channel banner from a multipart upload.
//
// PATCH /api/v1/users/cover-image
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes)

	file, header, err := requestutil.FormFile(request, FieldCoverImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if file == nil {
		respond.Error(writer, request, apperr.BadRequest("Cover image file is missing"))
		return
	}
	defer file.Close()

	user, err := handler.userService.UpdateCoverImage(request.Context(), userID, header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Cover image updated successfully")
}

// channelProfile returns the public channel view for a username.
//
// GET /api/v1/users/channel/{username}
func (handler *Handler) channelProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, FieldUsername)

	profile, err := handler.userService.ChannelProfile(request.Context(), username, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile, "User channel fetched successfully")
}

// watchHistory returns the authenticated user's watched videos.
//
// GET /api/v1/users/history
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.userService.WatchHistory(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries, "Watch History fetched successfully")
}

// removeFromHistory drops one video from the watch history.
//
// DELETE /api/v1/users/history/{videoId}
func (handler *Handler) removeFromHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")

	validator := &validate.Validator{}
	validator.Required("videoId", videoID).UUID("videoId", videoID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.RemoveFromHistory(request.Context(), userID, videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{}, "Removed from watch history")
}

// getClientIP tries to extract the real IP address of a user over proxy environments.
func getClientIP(request *http.Request) string {
	ip := request.Header.Get(constants.HeaderXRealIP)
	if ip == "" {
		ip = request.Header.Get(constants.HeaderXForwardedFor)
	}
	if ip == "" {
		ip = request.RemoteAddr
	}
	return ip
}
