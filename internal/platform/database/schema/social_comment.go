// Copyright (c) 2026 VideoTube. All rights reserved.

package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	VideoID   string
	OwnerID   string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	VideoID:   "videoid",
	OwnerID:   "ownerid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
