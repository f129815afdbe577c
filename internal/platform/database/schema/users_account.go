// Copyright (c) 2026 VideoTube. All rights reserved.

// Package schema centralizes table and column names so queries never
// hardcode identifiers that drift from the migrations.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	FullName         string
	Avatar           string
	CoverImage       string
	Password         string
	RefreshToken     string
	IsVerified       string
	IsGoogleSignedIn string
	OTP              string
	OTPExpiresAt     string
	IsOTPVerified    string
	CreatedAt        string
	UpdatedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	FullName:         "fullname",
	Avatar:           "avatar",
	CoverImage:       "coverimage",
	Password:         "passwordhash",
	RefreshToken:     "refreshtoken",
	IsVerified:       "isverified",
	IsGoogleSignedIn: "isgooglesignedin",
	OTP:              "otp",
	OTPExpiresAt:     "otpexpiresat",
	IsOTPVerified:    "isotpverified",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FullName, t.Avatar, t.CoverImage,
		t.Password, t.RefreshToken, t.IsVerified, t.IsGoogleSignedIn,
		t.OTP, t.OTPExpiresAt, t.IsOTPVerified, t.CreatedAt, t.UpdatedAt,
	}
}
