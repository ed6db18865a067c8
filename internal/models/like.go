package models

import "time"

// PostLike records that a user liked a post. Membership in this table is
// the source of truth for the viewer's like state; the post's likes counter
// is a separately mutated tally.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// ReplyLike records that a user liked a reply
type ReplyLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReplyID   uint      `json:"reply_id" gorm:"index;uniqueIndex:idx_reply_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_reply_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
