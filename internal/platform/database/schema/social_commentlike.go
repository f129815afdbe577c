// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// SocialCommentLikeTable represents the 'social.commentlike' table
type SocialCommentLikeTable struct {
	Table     string
	CommentID string
	LikedBy   string
	CreatedAt string
}

// SocialCommentLike is the schema definition for social.commentlike
var SocialCommentLike = SocialCommentLikeTable{
	Table:     "social.commentlike",
	CommentID: "commentid",
	LikedBy:   "likedby",
	CreatedAt: "createdat",
}
