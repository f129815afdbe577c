// Copyright (c) 2026 VideoTube. All rights reserved.

// Package googleauth verifies Google Sign-In ID tokens.
//
// # Architecture
//
// The frontend completes the OAuth dance and posts the resulting ID token to
// the API. This package validates the token's signature and audience against
// Google's public keys and extracts the profile fields the registration flow
// needs. Domain services depend on a narrow verifier interface, never on the
// Google SDK directly.
package googleauth

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

// Profile holds the identity fields extracted from a verified Google ID token.
type Profile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier validates Google ID tokens against a configured OAuth client ID.
type Verifier struct {
	clientID string
}

// NewVerifier creates a Verifier bound to the given OAuth client ID.
func NewVerifier(clientID string) (*Verifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("googleauth: client ID must not be empty")
	}
	return &Verifier{clientID: clientID}, nil
}

// Verify validates the ID token signature and audience, returning the
// embedded profile. The returned picture URL is upgraded from Google's
// default 96px thumbnail to a 400px rendition.
func (v *Verifier) Verify(ctx context.Context, idTokenString string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("googleauth: token validation failed: %w", err)
	}

	profile := &Profile{
		Subject: payload.Subject,
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
		Picture: UpgradePictureURL(claimString(payload.Claims, "picture")),
	}

	if profile.Email == "" {
		return nil, fmt.Errorf("googleauth: token payload missing email claim")
	}

	return profile, nil
}

// UpgradePictureURL swaps Google's 96px avatar suffix for a 400px one.
func UpgradePictureURL(pictureURL string) string {
	return strings.Replace(pictureURL, "=s96-c", "=s400-c", 1)
}

// claimString reads a string claim, tolerating missing or mistyped values.
func claimString(claims map[string]interface{}, key string) string {
	value, _ := claims[key].(string)
	return value
}
