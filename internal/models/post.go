package models

import "time"

// Post represents a forum post. The content field holds sanitized HTML
// produced by the rich text editor. Likes is a denormalized counter
// maintained by atomic increments alongside the post_likes membership
// table; membership is the source of truth for "liked by viewer".
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Name        string    `json:"name"`  // denormalized author name, fallback when the profile row is gone
	Class       string    `json:"class"` // denormalized author class label
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Likes       int       `json:"likes" gorm:"default:0"`
	IsAnonymous bool      `json:"is_anonymous" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Edited reports whether the post was changed after creation.
func (p *Post) Edited() bool {
	return p.UpdatedAt.Sub(p.CreatedAt) > time.Second
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title       string `json:"title" validate:"omitempty,max=200"`
	Content     string `json:"content" validate:"required,min=1"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title       string `json:"title" validate:"omitempty,max=200"`
	Content     string `json:"content" validate:"required,min=1"`
	IsAnonymous bool   `json:"is_anonymous"`
}
