package models

import "time"

// Reply represents a reply to a post. ParentReplyID is nil for top-level
// replies; a non-nil value must reference a top-level reply, so the thread
// never nests deeper than two levels.
type Reply struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PostID        uint      `json:"post_id" gorm:"index"`
	ParentReplyID *uint     `json:"parent_reply_id" gorm:"index"`
	UserID        uint      `json:"user_id" gorm:"index"`
	Name          string    `json:"name"`
	Class         string    `json:"class"`
	Content       string    `json:"content"`
	Likes         int       `json:"likes" gorm:"default:0"`
	IsAnonymous   bool      `json:"is_anonymous" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// TopLevel reports whether the reply is attached directly to the post.
func (r *Reply) TopLevel() bool {
	return r.ParentReplyID == nil
}

// CreateReplyRequest defines the request body for submitting a reply
type CreateReplyRequest struct {
	ParentReplyID *uint  `json:"parent_reply_id"`
	Content       string `json:"content" validate:"required,min=1"`
	IsAnonymous   bool   `json:"is_anonymous"`
}
