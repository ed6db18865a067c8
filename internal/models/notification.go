package models

import "time"

// NotificationType tags what triggered a notification.
type NotificationType string

const (
	NotificationPostLiked      NotificationType = "post_liked"
	NotificationPostReplied    NotificationType = "post_replied"
	NotificationCommentReplied NotificationType = "comment_replied"
	NotificationAdminBroadcast NotificationType = "admin_broadcast"
)

// Notification represents a user notification. ActorID is nil for admin
// broadcasts; Content carries the free text of a broadcast. Notifications
// are never deleted by users, only flipped unread -> read.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Type        NotificationType `json:"type" gorm:"size:30;index"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	ActorID     *uint            `json:"actor_id" gorm:"index"`
	PostID      *uint            `json:"post_id"`
	Content     string           `json:"content"`
	Link        string           `json:"link"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// BroadcastRequest defines the request body for an admin broadcast
type BroadcastRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
	Link    string `json:"link" validate:"omitempty,url"`
}
