// Package session resolves the page-session context once per page load.
// The resulting value is passed explicitly into every controller and
// handler; nothing holds it as ambient global state, and nothing mutates
// it after bootstrap (no live role revocation).
package session

import (
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// Session is the immutable viewer context for one page view.
type Session struct {
	UserID  uint
	Email   string
	Name    string
	Class   string
	IsAdmin bool
}

// DisplayName returns the name to greet the viewer with, falling back to
// the email when no name is set.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Bootstrap resolves the session for an authenticated user id: profile
// fields (preferred over the auth record) and the admin flag.
func Bootstrap(userID uint, users repositories.UserRepository, profiles repositories.UserProfileRepository, admins repositories.AdminRepository) (Session, error) {
	user, err := users.GetUserByID(userID)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Class:  user.Class,
	}

	if profile, err := profiles.GetByUserID(userID); err == nil {
		if profile.Name != "" {
			sess.Name = profile.Name
		}
		if profile.Class != "" {
			sess.Class = profile.Class
		}
	}

	isAdmin, err := admins.IsAdmin(userID)
	if err != nil {
		return Session{}, err
	}
	sess.IsAdmin = isAdmin

	return sess, nil
}

// CanDelete reports whether the viewer may delete content owned by ownerID.
// Admins may delete anything; authors may delete their own.
func (s Session) CanDelete(ownerID uint) bool {
	return s.IsAdmin || s.UserID == ownerID
}

// CanEdit reports whether the viewer may edit content owned by ownerID.
// Editing is author-only; the admin role never grants it.
func (s Session) CanEdit(ownerID uint) bool {
	return s.UserID == ownerID
}
