package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteContent is an editable rich-text page (guidelines, updates) stored in
// MongoDB, keyed by page slug.
type SiteContent struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Page      string             `json:"page" bson:"page"`
	Content   string             `json:"content" bson:"content"` // HTML body
	UpdatedBy uint               `json:"updated_by" bson:"updated_by"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// UpdateSiteContentRequest defines the request body for editing a site page
type UpdateSiteContentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
