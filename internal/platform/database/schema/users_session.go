// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table        string
	ID           string
	UserID       string
	RefreshToken string
	UserAgent    string
	IPAddress    string
	ExpiresAt    string
	CreatedAt    string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:        "users.session",
	ID:           "id",
	UserID:       "userid",
	RefreshToken: "refreshtoken",
	UserAgent:    "useragent",
	IPAddress:    "ipaddress",
	ExpiresAt:    "expiresat",
	CreatedAt:    "createdat",
}
