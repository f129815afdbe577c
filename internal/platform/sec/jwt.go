// Copyright (c) 2026 VideoTube. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, OTP
// generation) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small consumer-side interfaces.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/videotube/videotube/pkg/uuid"
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// Embedding the user's identity inside the JWT lets the authentication
// middleware rebuild the active user context from a single cheap existence
// check instead of hydrating the full profile row on every API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Field names mirror the JSON the frontend decodes from the token.
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// RefreshClaims is the minimal payload of a refresh token. It carries only
// the user ID so a stolen refresh token discloses nothing else.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"_id"`
}

// VerifyClaims is the payload of an email-verification link token.
type VerifyClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"_id"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// Each token family is signed with its own secret, so tokens are not
// interchangeable: an access token can never pass refresh verification and
// vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	verifySecret  []byte
	issuer        string
}

// NewTokenService creates a new TokenService from the three signing secrets.
func NewTokenService(accessSecret, refreshSecret, verifySecret, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" || verifySecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		verifySecret:  []byte(verifySecret),
		issuer:        issuer,
	}, nil
}

// GenerateAccessToken creates a new short-lived access token for a user.
func (service *TokenService) GenerateAccessToken(userID, email, username, fullName string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   userID,
		Email:    email,
		Username: username,
		FullName: fullName,
	}
	return service.sign(claims, service.accessSecret)
}

// GenerateRefreshToken creates a new long-lived refresh token for a user.
//
// Every token carries a unique jti: rotation relies on byte equality with the
// stored token, so two mints within the same second must still differ.
func (service *TokenService) GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}
	return service.sign(claims, service.refreshSecret)
}

// GenerateVerifyToken creates a new email-verification link token.
func (service *TokenService) GenerateVerifyToken(userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := VerifyClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}
	return service.sign(claims, service.verifySecret)
}

// VerifyAccessToken checks the signature and validity of an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if err := service.parse(tokenString, claims, service.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken checks the signature and validity of a refresh token.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.parse(tokenString, claims, service.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyVerifyToken checks the signature and validity of an email-verification token.
func (service *TokenService) VerifyVerifyToken(tokenString string) (*VerifyClaims, error) {
	claims := &VerifyClaims{}
	if err := service.parse(tokenString, claims, service.verifySecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// sign serializes and signs a claims struct with HS256.
func (service *TokenService) sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signedToken, nil
}

// parse validates a token string against the appropriate secret.
func (service *TokenService) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("sec: invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("sec: invalid token claims")
	}
	return nil
}
