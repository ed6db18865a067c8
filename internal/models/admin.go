package models

import "time"

// Admin marks a user as an administrator. Role checks are membership
// lookups against this table.
type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRoleRequest defines the request body for promoting or demoting a user
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=standard admin"`
}
