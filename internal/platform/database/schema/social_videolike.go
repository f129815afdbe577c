// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// SocialVideoLikeTable represents the 'social.videolike' table
type SocialVideoLikeTable struct {
	Table     string
	VideoID   string
	LikedBy   string
	CreatedAt string
}

// SocialVideoLike is the schema definition for social.videolike
var SocialVideoLike = SocialVideoLikeTable{
	Table:     "social.videolike",
	VideoID:   "videoid",
	LikedBy:   "likedby",
	CreatedAt: "createdat",
}
