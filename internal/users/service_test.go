// Copyright (c) 2026 VideoTube. All rights reserved.

package users

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/googleauth"
	"github.com/videotube/videotube/internal/platform/sec"
	"github.com/videotube/videotube/pkg/pointer"
)

// # Test Fakes

type fakeUserRepo struct {
	byID map[string]*User
}

func newFakeUserRepo(users ...*User) *fakeUserRepo {
	repo := &fakeUserRepo{byID: map[string]*User{}}
	for _, user := range users {
		repo.byID[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, user := range f.byID {
		if user.Email == email || user.Username == strings.ToLower(username) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userID string) error {
	delete(f.byID, userID)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	f.byID[userID].Avatar = avatarURL
	return nil
}

func (f *fakeUserRepo) UpdateCoverImage(_ context.Context, userID, coverImageURL string) error {
	f.byID[userID].CoverImage = coverImageURL
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	f.byID[userID].PasswordHash = newHash
	return nil
}

func (f *fakeUserRepo) SetRefreshToken(_ context.Context, userID, refreshToken string) error {
	user := f.byID[userID]
	user.RefreshToken = refreshToken
	user.IsLoggedIn = refreshToken != ""
	return nil
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	f.byID[userID].IsVerified = true
	return nil
}

func (f *fakeUserRepo) SetOTP(_ context.Context, userID, otp string, expiresAt time.Time) error {
	user := f.byID[userID]
	user.OTP = otp
	user.OTPExpiresAt = pointer.To(expiresAt)
	user.IsOTPVerified = false
	return nil
}

func (f *fakeUserRepo) MarkOTPVerified(_ context.Context, userID string) error {
	user := f.byID[userID]
	user.OTP = ""
	user.OTPExpiresAt = nil
	user.IsOTPVerified = true
	return nil
}

func (f *fakeUserRepo) ClearOTP(_ context.Context, userID string) error {
	user := f.byID[userID]
	user.OTP = ""
	user.OTPExpiresAt = nil
	user.IsOTPVerified = false
	return nil
}

func (f *fakeUserRepo) ChannelProfile(_ context.Context, username, _ string) (*ChannelProfile, error) {
	for _, user := range f.byID {
		if user.Username == username {
			return &ChannelProfile{ID: user.ID, Username: user.Username, FullName: user.FullName}, nil
		}
	}
	return nil, apperr.NotFound("channel does not exist")
}

func (f *fakeUserRepo) WatchHistory(_ context.Context, _ string) ([]WatchHistoryEntry, error) {
	return []WatchHistoryEntry{}, nil
}

func (f *fakeUserRepo) RemoveFromWatchHistory(_ context.Context, _, _ string) error {
	return nil
}

type fakeSessionRepo struct {
	byUser map[string]*Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byUser: map[string]*Session{}}
}

func (f *fakeSessionRepo) Replace(_ context.Context, session *Session) error {
	f.byUser[session.UserID] = session
	return nil
}

func (f *fakeSessionRepo) DeleteAllForUser(_ context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

type fakeCooldownRepo struct {
	taken map[string]bool
}

func newFakeCooldownRepo() *fakeCooldownRepo {
	return &fakeCooldownRepo{taken: map[string]bool{}}
}

func (f *fakeCooldownRepo) AcquireResendSlot(_ context.Context, email string, _ time.Duration) (bool, error) {
	if f.taken[email] {
		return false, nil
	}
	f.taken[email] = true
	return true, nil
}

type fakeMailer struct {
	verifyLinks []string
	otps        []string
	failNext    bool
}

func (f *fakeMailer) SendVerificationLink(_, _, verifyURL string) error {
	if f.failNext {
		return errors.New("smtp unavailable")
	}
	f.verifyLinks = append(f.verifyLinks, verifyURL)
	return nil
}

func (f *fakeMailer) SendOTP(_, _, otp string) error {
	if f.failNext {
		return errors.New("smtp unavailable")
	}
	f.otps = append(f.otps, otp)
	return nil
}

type fakeIdentityVerifier struct {
	profile *googleauth.Profile
	err     error
}

func (f *fakeIdentityVerifier) Verify(_ context.Context, _ string) (*googleauth.Profile, error) {
	return f.profile, f.err
}

type fakeUploader struct{}

func (f *fakeUploader) UploadAvatar(_ context.Context, filename string, _ io.Reader) (string, error) {
	return "https://cdn.test/avatars/" + filename, nil
}

func (f *fakeUploader) UploadCoverImage(_ context.Context, filename string, _ io.Reader) (string, error) {
	return "https://cdn.test/covers/" + filename, nil
}

func (f *fakeUploader) Delete(_ context.Context, _ string) error { return nil }

// # Harness

type serviceHarness struct {
	service  *Service
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	mailer   *fakeMailer
	tokens   *sec.TokenService
}

func newServiceHarness(t *testing.T, seed ...*User) *serviceHarness {
	t.Helper()

	tokens, err := sec.NewTokenService("access-secret", "refresh-secret", "verify-secret", "test")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(seed...)
	sessionRepo := newFakeSessionRepo()
	mailer := &fakeMailer{}

	service := NewService(
		userRepo,
		sessionRepo,
		newFakeCooldownRepo(),
		tokens,
		mailer,
		&fakeIdentityVerifier{},
		&fakeUploader{},
		"https://app.test",
	)

	return &serviceHarness{
		service:  service,
		users:    userRepo,
		sessions: sessionRepo,
		mailer:   mailer,
		tokens:   tokens,
	}
}

func seedUser(t *testing.T, password string) *User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &User{
		ID:           "0199d9aa-0000-7000-8000-000000000001",
		Username:     "jane",
		Email:        "jane@videotube.app",
		FullName:     "Jane Doe",
		Avatar:       "https://cdn.test/avatars/jane.jpg",
		PasswordHash: hash,
		IsVerified:   true,
	}
}

// # Registration

func TestRegisterCreatesUnverifiedUserAndSendsMail(t *testing.T) {
	h := newServiceHarness(t)

	user, err := h.service.Register(context.Background(), RegisterInput{
		FullName:       "Jane Doe",
		Email:          "jane@videotube.app",
		Username:       "JaneDoe",
		Password:       "s3cret-pass",
		Avatar:         strings.NewReader("fake-image"),
		AvatarFilename: "selfie.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "janedoe", user.Username, "username must be lowercased")
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.CoverImage)

	require.Len(t, h.mailer.verifyLinks, 1)
	assert.Contains(t, h.mailer.verifyLinks[0], "https://app.test/verify-email/")
}

func TestRegisterRollsBackWhenMailFails(t *testing.T) {
	h := newServiceHarness(t)
	h.mailer.failNext = true

	_, err := h.service.Register(context.Background(), RegisterInput{
		FullName:       "Jane Doe",
		Email:          "jane@videotube.app",
		Username:       "jane",
		Password:       "s3cret-pass",
		Avatar:         strings.NewReader("fake-image"),
		AvatarFilename: "selfie.jpg",
	})

	requireAppError(t, err, 500, "Failed to send verification email")

	// The half-registered account must be gone so the identity can retry.
	assert.Empty(t, h.users.byID)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.service.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "",
		Username: "jane",
		Password: "s3cret-pass",
	})

	requireAppError(t, err, 400, "All fields are required")
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	h := newServiceHarness(t, seedUser(t, "s3cret-pass"))

	_, err := h.service.Register(context.Background(), RegisterInput{
		FullName:       "Other Jane",
		Email:          "jane@videotube.app",
		Username:       "otherjane",
		Password:       "s3cret-pass",
		Avatar:         strings.NewReader("fake-image"),
		AvatarFilename: "selfie.jpg",
	})

	requireAppError(t, err, 409, "User with email or username already exists")
}

func TestRegisterRequiresAvatar(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.service.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@videotube.app",
		Username: "jane",
		Password: "s3cret-pass",
	})

	requireAppError(t, err, 400, "Avatar file is required")
}

// # Login

func TestLoginIssuesTokensAndReplacesSession(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	session, err := h.service.Login(context.Background(), LoginInput{
		Email:    "jane@videotube.app",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// The refresh token must be the account's single active one.
	assert.Equal(t, session.RefreshToken, h.users.byID[user.ID].RefreshToken)
	require.Contains(t, h.sessions.byUser, user.ID)
	assert.Equal(t, session.RefreshToken, h.sessions.byUser[user.ID].RefreshToken)

	claims, err := h.tokens.VerifyAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "jane", claims.Username)
}

func TestLoginRejectsGoogleLinkedAccount(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	user.IsGoogleSignedIn = true
	h := newServiceHarness(t, user)

	_, err := h.service.Login(context.Background(), LoginInput{
		Email:    user.Email,
		Password: "s3cret-pass",
	})

	requireAppError(t, err, 400, "This account was created using Google login")
}

func TestLoginRejectsAccountWithGoogleID(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	user.GoogleID = "google-sub-9"
	h := newServiceHarness(t, user)

	_, err := h.service.Login(context.Background(), LoginInput{
		Email:    user.Email,
		Password: "s3cret-pass",
	})

	requireAppError(t, err, 400, "This account was created using Google login")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h := newServiceHarness(t, seedUser(t, "s3cret-pass"))

	_, err := h.service.Login(context.Background(), LoginInput{
		Email:    "jane@videotube.app",
		Password: "wrong-pass",
	})

	requireAppError(t, err, 400, "Password incorrect")
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	user.IsVerified = false
	h := newServiceHarness(t, user)

	_, err := h.service.Login(context.Background(), LoginInput{
		Username: "jane",
		Password: "s3cret-pass",
	})

	requireAppError(t, err, 403, "Verify your account before login")
}

// # Email Verification

func TestVerifyEmailMarksVerifiedAndLogsIn(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	user.IsVerified = false
	h := newServiceHarness(t, user)

	token, err := h.tokens.GenerateVerifyToken(user.ID, time.Minute)
	require.NoError(t, err)

	result, err := h.service.VerifyEmail(context.Background(), token)
	require.NoError(t, err)

	assert.False(t, result.AlreadyVerified)
	assert.True(t, result.User.IsVerified)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, result.RefreshToken, h.users.byID[user.ID].RefreshToken)
}

func TestVerifyEmailIsIdempotent(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	token, err := h.tokens.GenerateVerifyToken(user.ID, time.Minute)
	require.NoError(t, err)

	result, err := h.service.VerifyEmail(context.Background(), token)
	require.NoError(t, err)

	assert.True(t, result.AlreadyVerified)
	assert.Empty(t, result.AccessToken, "no new credentials for an already verified account")
}

func TestVerifyEmailRejectsGarbageToken(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.service.VerifyEmail(context.Background(), "not-a-jwt")

	requireAppError(t, err, 400, "Verification link expired or invalid")
}

// # Token Refresh

func TestRefreshRotatesTokenPair(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	session, err := h.service.Login(context.Background(), LoginInput{
		Email:    user.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokens, err := h.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, tokens.RefreshToken, h.users.byID[user.ID].RefreshToken)
}

func TestRefreshRejectsRotatedToken(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	session, err := h.service.Login(context.Background(), LoginInput{
		Email:    user.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	// First refresh rotates the stored token, the old one must now be dead.
	_, err = h.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	_, err = h.service.Refresh(context.Background(), session.RefreshToken)
	requireAppError(t, err, 401, "Refresh token expired or already used")
}

func TestRefreshRejectsTokenAfterLogout(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	session, err := h.service.Login(context.Background(), LoginInput{
		Email:    user.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.True(t, h.users.byID[user.ID].IsLoggedIn)

	require.NoError(t, h.service.Logout(context.Background(), user.ID))
	assert.False(t, h.users.byID[user.ID].IsLoggedIn)

	// Logout revoked the stored token, the pre-logout cookie is dead.
	_, err = h.service.Refresh(context.Background(), session.RefreshToken)
	requireAppError(t, err, 401, "Refresh token expired or already used")
}

// # OTP Recovery

func TestForgotPasswordStoresOTPAndMailsIt(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	err := h.service.ForgotPassword(context.Background(), user.Email)
	require.NoError(t, err)

	stored := h.users.byID[user.ID]
	assert.Len(t, stored.OTP, 6)
	require.NotNil(t, stored.OTPExpiresAt)
	assert.True(t, stored.OTPExpiresAt.After(time.Now()))

	require.Len(t, h.mailer.otps, 1)
	assert.Equal(t, stored.OTP, h.mailer.otps[0])
}

func TestForgotPasswordWipesOTPWhenMailFails(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)
	h.mailer.failNext = true

	err := h.service.ForgotPassword(context.Background(), user.Email)

	require.Error(t, err)
	assert.Empty(t, h.users.byID[user.ID].OTP)
}

func TestVerifyOTPFlow(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	require.NoError(t, h.service.ForgotPassword(context.Background(), user.Email))
	otp := h.users.byID[user.ID].OTP

	err := h.service.VerifyOTP(context.Background(), user.Email, "000000")
	requireAppError(t, err, 400, "Invalid OTP")

	require.NoError(t, h.service.VerifyOTP(context.Background(), user.Email, otp))
	assert.True(t, h.users.byID[user.ID].IsOTPVerified)

	// The OTP is consumed, a second attempt must fail.
	err = h.service.VerifyOTP(context.Background(), user.Email, otp)
	requireAppError(t, err, 401, "OTP not generated or already verified")
}

func TestVerifyOTPRejectsExpired(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	expired := time.Now().Add(-time.Minute)
	user.OTP = "123456"
	user.OTPExpiresAt = pointer.To(expired)
	h := newServiceHarness(t, user)

	err := h.service.VerifyOTP(context.Background(), user.Email, "123456")

	requireAppError(t, err, 400, "OTP has expired, Please generate new OTP")
}

func TestResetPasswordRequiresOTPVerification(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	err := h.service.ResetPassword(context.Background(), user.Email, "new-pass-1", "new-pass-1")

	requireAppError(t, err, 403, "OTP verification required")
}

func TestResetPasswordUpdatesHashAndConsumesFlag(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	h := newServiceHarness(t, user)

	require.NoError(t, h.service.ForgotPassword(context.Background(), user.Email))
	require.NoError(t, h.service.VerifyOTP(context.Background(), user.Email, h.users.byID[user.ID].OTP))

	err := h.service.ResetPassword(context.Background(), user.Email, "new-pass-1", "new-pass-1")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("new-pass-1", h.users.byID[user.ID].PasswordHash))
	assert.False(t, h.users.byID[user.ID].IsOTPVerified)

	err = h.service.ResetPassword(context.Background(), user.Email, "other", "nope")
	requireAppError(t, err, 400, "Password do not match")
}

// # Google Sign-In

func TestGoogleLoginProvisionsNewAccount(t *testing.T) {
	h := newServiceHarness(t)
	h.service.identityVerifier = &fakeIdentityVerifier{profile: &googleauth.Profile{
		Subject: "google-sub-1",
		Email:   "New.User@gmail.com",
		Name:    "New User",
		Picture: "https://lh3.googleusercontent.com/a/pic=s96-c",
	}}

	session, err := h.service.GoogleLogin(context.Background(), GoogleLoginInput{IDToken: "valid"})
	require.NoError(t, err)

	assert.Equal(t, "new.user", session.User.Username)
	assert.True(t, session.User.IsVerified)
	assert.True(t, session.User.IsGoogleSignedIn)
	assert.Equal(t, "google-sub-1", session.User.GoogleID)
	assert.Contains(t, session.User.Avatar, "=s400-c")
	assert.NotEmpty(t, session.AccessToken)
}

func TestGoogleLoginVerifiesExistingUnverifiedAccount(t *testing.T) {
	user := seedUser(t, "s3cret-pass")
	user.IsVerified = false
	h := newServiceHarness(t, user)
	h.service.identityVerifier = &fakeIdentityVerifier{profile: &googleauth.Profile{
		Subject: "google-sub-1",
		Email:   user.Email,
		Name:    user.FullName,
	}}

	session, err := h.service.GoogleLogin(context.Background(), GoogleLoginInput{IDToken: "valid"})
	require.NoError(t, err)

	assert.True(t, session.User.IsVerified)
	assert.Equal(t, user.ID, session.User.ID)
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	h := newServiceHarness(t)
	h.service.identityVerifier = &fakeIdentityVerifier{err: errors.New("bad signature")}

	_, err := h.service.GoogleLogin(context.Background(), GoogleLoginInput{IDToken: "tampered"})

	requireAppError(t, err, 401, "Google token verification failed")
}

// # Helpers

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
	assert.Equal(t, message, appError.Message)
}
