// Package notifications keeps the notification badge and panel in step
// with the store for one signed-in viewer.
package notifications

import (
	"fmt"
	"log"
	"time"

	"github.com/pacifora/sahabat-ktb/backend/internal/format"
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// PanelLimit is how many notifications the dropdown panel shows.
const PanelLimit = 20

// BadgeCap is the largest count the badge displays literally; anything
// above renders as "99+".
const BadgeCap = 99

// View is one rendered row in the notification panel.
type View struct {
	ID        uint
	Message   string
	Link      string
	IsRead    bool
	Timestamp string
}

// Renderer is the badge-and-panel rendering boundary.
type Renderer interface {
	RenderBadge(text string)
	HideBadge()
	RenderList(items []View)
	RenderEmptyPanel()
}

// Synchronizer drives the badge and panel for one viewer.
type Synchronizer struct {
	recipientID uint
	store       repositories.NotificationRepository
	users       repositories.UserRepository
	renderer    Renderer
	now         func() time.Time
	logf        func(format string, v ...any)
}

// NewSynchronizer wires a synchronizer for the signed-in viewer.
func NewSynchronizer(recipientID uint, store repositories.NotificationRepository, users repositories.UserRepository, renderer Renderer) *Synchronizer {
	return &Synchronizer{
		recipientID: recipientID,
		store:       store,
		users:       users,
		renderer:    renderer,
		now:         time.Now,
		logf:        log.Printf,
	}
}

// BadgeText formats an unread count for the badge. Empty means hidden.
func BadgeText(count int64) string {
	switch {
	case count <= 0:
		return ""
	case count > BadgeCap:
		return fmt.Sprintf("%d+", BadgeCap)
	default:
		return fmt.Sprintf("%d", count)
	}
}

// UpdateBadge fetches the unread count and renders or hides the badge.
func (s *Synchronizer) UpdateBadge() error {
	count, err := s.store.GetUnreadCount(s.recipientID)
	if err != nil {
		s.logf("error loading unread count: %v", err)
		return err
	}
	if text := BadgeText(count); text != "" {
		s.renderer.RenderBadge(text)
	} else {
		s.renderer.HideBadge()
	}
	return nil
}

// LoadPanel fetches the newest notifications, resolves every actor in one
// batched lookup and renders the panel.
func (s *Synchronizer) LoadPanel() error {
	items, err := s.store.GetRecent(s.recipientID, PanelLimit)
	if err != nil {
		s.logf("error loading notifications: %v", err)
		return err
	}
	if len(items) == 0 {
		s.renderer.RenderEmptyPanel()
		return nil
	}

	actors := s.loadActors(items)

	views := make([]View, 0, len(items))
	for _, n := range items {
		views = append(views, View{
			ID:        n.ID,
			Message:   Message(n, actors),
			Link:      n.Link,
			IsRead:    n.IsRead,
			Timestamp: format.RelativeTime(n.CreatedAt, s.now()),
		})
	}
	s.renderer.RenderList(views)
	return nil
}

func (s *Synchronizer) loadActors(items []models.Notification) map[uint]models.User {
	seen := map[uint]bool{}
	var ids []uint
	for _, n := range items {
		if n.ActorID == nil || seen[*n.ActorID] {
			continue
		}
		seen[*n.ActorID] = true
		ids = append(ids, *n.ActorID)
	}
	if len(ids) == 0 {
		return map[uint]models.User{}
	}
	actors, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		s.logf("error loading notification actors: %v", err)
		return map[uint]models.User{}
	}
	return actors
}

// Message renders the panel text for one notification. Actor names are
// escaped; a missing actor row falls back to "Someone".
func Message(n models.Notification, actors map[uint]models.User) string {
	name := "Someone"
	if n.ActorID != nil {
		if actor, ok := actors[*n.ActorID]; ok && actor.Name != "" {
			name = format.EscapeText(actor.Name)
		}
	}

	switch n.Type {
	case models.NotificationPostLiked:
		return name + " liked your post"
	case models.NotificationPostReplied:
		return name + " replied to your post"
	case models.NotificationCommentReplied:
		return name + " replied to your comment"
	case models.NotificationAdminBroadcast:
		return format.EscapeText(n.Content)
	default:
		return format.EscapeText(n.Content)
	}
}

// MarkRead flips one notification to read and refreshes the badge.
func (s *Synchronizer) MarkRead(notificationID uint) error {
	if err := s.store.MarkAsRead(notificationID); err != nil {
		s.logf("error marking notification %d read: %v", notificationID, err)
		return err
	}
	return s.UpdateBadge()
}

// MarkAllRead flips every unread notification to read, then re-renders
// both the badge and the panel so rows lose their unread styling. Safe to
// call when nothing is unread; the badge always ends hidden.
func (s *Synchronizer) MarkAllRead() error {
	if err := s.store.MarkAllAsRead(s.recipientID); err != nil {
		s.logf("error marking all notifications read: %v", err)
		return err
	}
	s.renderer.HideBadge()
	return s.LoadPanel()
}
