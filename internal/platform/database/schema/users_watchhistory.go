// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// UserWatchHistoryTable represents the 'users.watchhistory' table
type UserWatchHistoryTable struct {
	Table     string
	UserID    string
	VideoID   string
	WatchedAt string
}

// UserWatchHistory is the schema definition for users.watchhistory
var UserWatchHistory = UserWatchHistoryTable{
	Table:     "users.watchhistory",
	UserID:    "userid",
	VideoID:   "videoid",
	WatchedAt: "watchedat",
}
