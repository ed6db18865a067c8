package models

import "time"

// UserProfile is the public profile row kept alongside the auth user.
// Posts and replies also carry a denormalized author name/class; the
// profile is refreshed on each page load and preferred over those, with
// the stored values only a fallback for rows whose profile is missing.
type UserProfile struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"uniqueIndex"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Class      string     `json:"class"`
	Bio        string     `json:"bio"`
	LastSignIn *time.Time `json:"last_sign_in"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UpdateProfileRequest defines the request body for the settings page
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Class string `json:"class" validate:"omitempty,max=50"`
	Bio   string `json:"bio" validate:"omitempty,max=300"`
}

// DisplayAuthor resolves the author fields to render for a post or reply.
// Anonymity always wins over any stored or live profile data.
func DisplayAuthor(isAnonymous bool, rowName, rowClass string, profile *UserProfile) (name, class string) {
	if isAnonymous {
		return "Anonymous", ""
	}
	name, class = rowName, rowClass
	if profile != nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Class != "" {
			class = profile.Class
		}
	}
	return name, class
}
