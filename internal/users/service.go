// Copyright (c) 2026 VideoTube. All rights reserved.

package users

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/constants"
	"github.com/videotube/videotube/internal/platform/googleauth"
	"github.com/videotube/videotube/internal/platform/sec"
	"github.com/videotube/videotube/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed short-lived JWT carrying the
	// user's public identity claims.
	GenerateAccessToken(userID, email, username, fullName string, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed long-lived JWT carrying only the user ID.
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// GenerateVerifyToken creates a signed token for email verification links.
	GenerateVerifyToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken validates a refresh token and returns its claims.
	VerifyRefreshToken(tokenString string) (*sec.RefreshClaims, error)

	// VerifyVerifyToken validates an email verification token and returns its claims.
	VerifyVerifyToken(tokenString string) (*sec.VerifyClaims, error)
}

// MailSender delivers transactional account emails.
type MailSender interface {
	SendVerificationLink(to, fullName, verifyURL string) error
	SendOTP(to, fullName, otp string) error
}

// IdentityVerifier validates third-party ID tokens (Google Sign-In).
type IdentityVerifier interface {
	Verify(context context.Context, idToken string) (*googleauth.Profile, error)
}

// MediaUploader stores user-submitted images and returns their public URLs.
type MediaUploader interface {
	UploadAvatar(context context.Context, filename string, body io.Reader) (string, error)
	UploadCoverImage(context context.Context, filename string, body io.Reader) (string, error)
	Delete(context context.Context, objectURL string) error
}

// ResendCooldownTTL is the minimum gap between two verification mails
// for the same address.
const ResendCooldownTTL = 60 * time.Second

// Service implements the account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository     UserRepository
	sessionRepository  SessionRepository
	cooldownRepository CooldownRepository
	tokenProvider      TokenProvider
	mailSender         MailSender
	identityVerifier   IdentityVerifier
	mediaUploader      MediaUploader
	frontendBaseURL    string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	cooldownRepo CooldownRepository,
	tokenProv TokenProvider,
	mailSender MailSender,
	identityVerifier IdentityVerifier,
	mediaUploader MediaUploader,
	frontendBaseURL string,
) *Service {
	return &Service{
		userRepository:     userRepo,
		sessionRepository:  sessionRepo,
		cooldownRepository: cooldownRepo,
		tokenProvider:      tokenProv,
		mailSender:         mailSender,
		identityVerifier:   identityVerifier,
		mediaUploader:      mediaUploader,
		frontendBaseURL:    strings.TrimRight(frontendBaseURL, "/"),
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
// Avatar is mandatory, CoverImage may be nil.
type RegisterInput struct {
	FullName           string
	Email              string
	Username           string
	Password           string
	Avatar             io.Reader
	AvatarFilename     string
	CoverImage         io.Reader
	CoverImageFilename string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Uploads the profile media, creates the account in an unverified
state, and dispatches the verification mail. A registration whose mail cannot
be delivered is rolled back, the caller retries with the same identity.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists), validation, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)

	if fullName == "" || email == "" || username == "" || input.Password == "" {
		return nil, apperr.BadRequest("All fields are required")
	}

	// Single round trip for both identity checks. Client-safe Conflict error.
	exists, err := service.userRepository.ExistsByEmailOrUsername(context, email, username)
	if err != nil {
		return nil, fmt.Errorf("users_service_register_lookup_failed: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("User with email or username already exists")
	}

	if input.Avatar == nil {
		return nil, apperr.BadRequest("Avatar file is required")
	}

	avatarURL, err := service.mediaUploader.UploadAvatar(context, input.AvatarFilename, input.Avatar)
	if err != nil {
		return nil, apperr.Dependency("Avatar file is required", err)
	}

	coverImageURL := ""
	if input.CoverImage != nil {
		coverImageURL, err = service.mediaUploader.UploadCoverImage(context, input.CoverImageFilename, input.CoverImage)
		if err != nil {
			return nil, apperr.Dependency("Cover image upload failed", err)
		}
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     strings.ToLower(username),
		Email:        email,
		FullName:     fullName,
		Avatar:       avatarURL,
		CoverImage:   coverImageURL,
		PasswordHash: hashedPassword,
		IsVerified:   false,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("users_service_register_failed: %w", err)
	}

	// The account is unusable until the verification link arrives, so a mail
	// outage rolls the registration back instead of stranding the identity.
	token, err := service.tokenProvider.GenerateVerifyToken(user.ID, constants.EmailVerifyTokenTTL)
	if err != nil {
		_ = service.userRepository.Delete(context, user.ID)
		return nil, fmt.Errorf("users_service_register_verify_token_failed: %w", err)
	}
	if err := service.mailSender.SendVerificationLink(user.Email, user.FullName, service.verifyURL(token)); err != nil {
		_ = service.userRepository.Delete(context, user.ID)
		return nil, apperr.Dependency("Failed to send verification email", err)
	}

	return user, nil
}

// verifyURL builds the frontend link embedded in verification mails.
func (service *Service) verifyURL(token string) string {
	return service.frontendBaseURL + "/verify-email/" + token
}

// VerifyEmailResult carries the outcome of a verification-link click.
// Tokens are only present when the account transitioned to verified.
type VerifyEmailResult struct {
	User            *User
	AccessToken     string
	RefreshToken    string
	AlreadyVerified bool
}

/*
VerifyEmail confirms a user's email ownership via a signed link token.

Description: Validates the token signature and expiry, marks the account
verified, and logs the user straight in by issuing a token pair.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *VerifyEmailResult: Verified user and fresh credentials
  - error: Invalid/expired token or storage failures
*/
func (service *Service) VerifyEmail(context context.Context, token string) (*VerifyEmailResult, error) {
	if token == "" {
		return nil, apperr.BadRequest("Verification token missing")
	}

	claims, err := service.tokenProvider.VerifyVerifyToken(token)
	if err != nil {
		return nil, apperr.BadRequest("Verification link expired or invalid")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.NotFound("User not found")
	}

	// Clicking an old link twice must not mint new credentials.
	if user.IsVerified {
		return &VerifyEmailResult{User: user, AlreadyVerified: true}, nil
	}

	if err := service.userRepository.MarkVerified(context, user.ID); err != nil {
		return nil, fmt.Errorf("users_service_verify_email_failed: %w", err)
	}
	user.IsVerified = true

	accessToken, refreshToken, err := service.issueTokens(context, user)
	if err != nil {
		return nil, err
	}

	return &VerifyEmailResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

/*
ResendVerification sends a fresh verification mail for an unverified account.

Description: Rate-limited per address through Redis so a user mashing the
button cannot flood the mail provider.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: NotFound, BadRequest, RateLimited, or delivery failures
*/
func (service *Service) ResendVerification(context context.Context, email string) error {
	if email == "" {
		return apperr.BadRequest("Email is required")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return apperr.NotFound("User not found")
	}

	if user.IsVerified {
		return apperr.BadRequest("Email is already verified")
	}

	allowed, err := service.cooldownRepository.AcquireResendSlot(context, email, ResendCooldownTTL)
	if err != nil {
		return fmt.Errorf("users_service_resend_cooldown_failed: %w", err)
	}
	if !allowed {
		return apperr.RateLimited(int(ResendCooldownTTL / time.Second))
	}

	token, err := service.tokenProvider.GenerateVerifyToken(user.ID, constants.EmailVerifyTokenTTL)
	if err != nil {
		return fmt.Errorf("users_service_resend_token_failed: %w", err)
	}

	if err := service.mailSender.SendVerificationLink(user.Email, user.FullName, service.verifyURL(token)); err != nil {
		return apperr.Dependency("Failed to send verification email. Please try again later.", err)
	}

	return nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
// Either Username or Email must be present.
type LoginInput struct {
	Username  string
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
replaces any previous session (single active login per account), and stores
the issued refresh token on the account row.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Bad credentials, unverified account, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	if input.Username == "" && input.Email == "" {
		return nil, apperr.BadRequest("username or email is required")
	}

	// Flexible login: look up by Email first, then Username.
	var user *User
	var err error
	if input.Email != "" {
		user, err = service.userRepository.FindByEmail(context, input.Email)
	}
	if user == nil && input.Username != "" {
		user, err = service.userRepository.FindByUsername(context, strings.ToLower(input.Username))
	}
	if err != nil || user == nil {
		return nil, apperr.BadRequest("User does not exist")
	}

	// An account with a linked Google identity never gets a password path.
	if user.IsGoogleSignedIn || user.GoogleID != "" {
		return nil, apperr.BadRequest("This account was created using Google login")
	}

	if input.Password == "" {
		return nil, apperr.BadRequest("Password is required")
	}

	// Constant-time comparison in bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.BadRequest("Password incorrect")
	}

	if !user.IsVerified {
		return nil, apperr.Forbidden("Verify your account before login")
	}

	return service.establishSession(context, user, input.UserAgent, input.IPAddress)
}

// GoogleLoginInput carries a Google ID token plus client metadata.
type GoogleLoginInput struct {
	IDToken   string
	UserAgent string
	IPAddress string
}

/*
GoogleLogin authenticates a user through a verified Google ID token.

Description: Validates the token against the configured OAuth client,
provisions an account on first sign-in (verified immediately, Google has
confirmed the address), and establishes a session.

Parameters:
  - context: context.Context
  - input: GoogleLoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Token verification or storage failures
*/
func (service *Service) GoogleLogin(context context.Context, input GoogleLoginInput) (*LoginSession, error) {
	if input.IDToken == "" {
		return nil, apperr.BadRequest("Google idToken is required")
	}

	profile, err := service.identityVerifier.Verify(context, input.IDToken)
	if err != nil {
		return nil, apperr.Unauthorized("Google token verification failed")
	}
	if profile.Email == "" {
		return nil, apperr.BadRequest("Google email not found")
	}

	user, err := service.userRepository.FindByEmail(context, profile.Email)
	if err != nil {
		// First sign-in: provision the account from the Google profile.
		user = &User{
			ID:               uuid.New(),
			Username:         usernameFromEmail(profile.Email),
			Email:            profile.Email,
			FullName:         profile.Name,
			Avatar:           googleauth.UpgradePictureURL(profile.Picture),
			GoogleID:         profile.Subject,
			IsVerified:       true,
			IsGoogleSignedIn: true,
		}
		if err := service.userRepository.Create(context, user); err != nil {
			return nil, fmt.Errorf("users_service_google_create_failed: %w", err)
		}
	} else if !user.IsVerified {
		// Google has confirmed ownership of the address.
		if err := service.userRepository.MarkVerified(context, user.ID); err != nil {
			return nil, fmt.Errorf("users_service_google_verify_failed: %w", err)
		}
		user.IsVerified = true
	}

	return service.establishSession(context, user, input.UserAgent, input.IPAddress)
}

// usernameFromEmail derives the default username from the address local part.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToLower(local)
}

/*
Logout terminates the user's active session.

Description: Clears the stored refresh token (so the old cookie can never be
replayed) and drops the session row.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.SetRefreshToken(context, userID, ""); err != nil {
		return fmt.Errorf("users_service_logout_failed: %w", err)
	}

	if err := service.sessionRepository.DeleteAllForUser(context, userID); err != nil {
		return fmt.Errorf("users_service_logout_session_failed: %w", err)
	}

	return nil
}

// # Session Management

// RefreshedTokens is the fresh credential pair produced by a token refresh.
type RefreshedTokens struct {
	AccessToken  string
	RefreshToken string
}

/*
Refresh exchanges a valid refresh token for a new token pair.

Description: Verifies the JWT signature, then requires byte equality with the
single token stored on the account row. Any previously issued refresh token
stops working the moment a new one is stored (rotation with replay detection).

Parameters:
  - context: context.Context
  - incomingToken: string

Returns:
  - *RefreshedTokens: Rotated credentials
  - error: Unauthorized on any verification failure
*/
func (service *Service) Refresh(context context.Context, incomingToken string) (*RefreshedTokens, error) {
	claims, err := service.tokenProvider.VerifyRefreshToken(incomingToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token - user not found")
	}

	if incomingToken != user.RefreshToken {
		return nil, apperr.Unauthorized("Refresh token expired or already used")
	}

	accessToken, refreshToken, err := service.issueTokens(context, user)
	if err != nil {
		return nil, err
	}

	return &RefreshedTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// # Password Recovery

/*
ForgotPassword generates an OTP and mails it to the account holder.

Description: Stores the OTP and its 10 minute expiry on the account row.
If the mail cannot be delivered the OTP is wiped again so an attacker
cannot race a half-initialized reset.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: NotFound or delivery failures
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {
	if email == "" {
		return apperr.BadRequest("Email is required")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return apperr.NotFound("User not found")
	}

	otp, err := sec.GenerateOTP()
	if err != nil {
		return fmt.Errorf("users_service_otp_generation_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.OTPTTL)
	if err := service.userRepository.SetOTP(context, user.ID, otp, expiresAt); err != nil {
		return fmt.Errorf("users_service_otp_store_failed: %w", err)
	}

	if err := service.mailSender.SendOTP(user.Email, user.FullName, otp); err != nil {
		_ = service.userRepository.ClearOTP(context, user.ID)
		return apperr.Dependency("Failed to send OTP email", err)
	}

	return nil
}

/*
VerifyOTP checks a submitted OTP against the one stored for the account.

Parameters:
  - context: context.Context
  - email: string
  - otp: string

Returns:
  - error: Missing, expired, or mismatched OTP
*/
func (service *Service) VerifyOTP(context context.Context, email, otp string) error {
	if otp == "" {
		return apperr.NotFound("OTP not found")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return apperr.NotFound("User not found")
	}

	if user.OTP == "" || user.OTPExpiresAt == nil {
		return apperr.Unauthorized("OTP not generated or already verified")
	}

	if user.OTPExpiresAt.Before(time.Now()) {
		return apperr.BadRequest("OTP has expired, Please generate new OTP")
	}

	if otp != user.OTP {
		return apperr.BadRequest("Invalid OTP")
	}

	if err := service.userRepository.MarkOTPVerified(context, user.ID); err != nil {
		return fmt.Errorf("users_service_otp_verify_failed: %w", err)
	}

	return nil
}

/*
ResetPassword sets a new password after a successful OTP verification.

Description: Gate-kept by the isotpverified flag so the endpoint cannot be
used without completing the OTP challenge first. Consumes the verification
flag on success.

Parameters:
  - context: context.Context
  - email: string
  - newPassword: string
  - confirmPassword: string

Returns:
  - error: Validation, Forbidden, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, email, newPassword, confirmPassword string) error {
	if newPassword == "" || confirmPassword == "" {
		return apperr.BadRequest("All fields are required")
	}

	if newPassword != confirmPassword {
		return apperr.BadRequest("Password do not match")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return apperr.NotFound("User not found")
	}

	if !user.IsOTPVerified {
		return apperr.Forbidden("OTP verification required")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("users_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("users_service_reset_password_update_failed: %w", err)
	}

	if err := service.userRepository.ClearOTP(context, user.ID); err != nil {
		return fmt.Errorf("users_service_reset_password_cleanup_failed: %w", err)
	}

	return nil
}

// # Internals

// issueTokens mints a fresh access/refresh pair and stores the refresh
// token as the account's single active one.
func (service *Service) issueTokens(context context.Context, user *User) (string, string, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Email, user.Username, user.FullName, constants.AccessTokenTTL,
	)
	if err != nil {
		return "", "", fmt.Errorf("users_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, constants.RefreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("users_service_refresh_token_failed: %w", err)
	}

	if err := service.userRepository.SetRefreshToken(context, user.ID, refreshToken); err != nil {
		return "", "", fmt.Errorf("users_service_store_refresh_token_failed: %w", err)
	}

	return accessToken, refreshToken, nil
}

// establishSession issues tokens and replaces the user's tracking session.
func (service *Service) establishSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, refreshToken, err := service.issueTokens(context, user)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
		ExpiresAt:    time.Now().Add(constants.RefreshTokenTTL),
	}
	if err := service.sessionRepository.Replace(context, session); err != nil {
		return nil, fmt.Errorf("users_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
