package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/notifications"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// EnrichedNotification is one panel row with its rendered message
type EnrichedNotification struct {
	models.Notification
	Message string `json:"message"`
}

// GetNotifications returns the newest notifications for the panel with one
// batched actor lookup.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	items, err := h.notificationRepository.GetRecent(currentUserID, notifications.PanelLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	actors, err := h.loadActors(items)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]EnrichedNotification, len(items))
	for i, n := range items {
		enriched[i] = EnrichedNotification{
			Notification: n,
			Message:      notifications.Message(n, actors),
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": enriched})
}

func (h *NotificationHandler) loadActors(items []models.Notification) (map[uint]models.User, error) {
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
		return map[uint]models.User{}, nil
	}
	return h.userRepository.GetUsersByIDs(ids)
}

// GetUnreadCount returns the badge count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": count,
		"badge": notifications.BadgeText(count),
	})
}

// MarkAsRead flips one notification to read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	notificationID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(notificationID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead flips every unread notification to read. Idempotent.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// Broadcast sends an admin announcement to every user. Registered behind
// the admin gate.
func (h *NotificationHandler) Broadcast(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userIDs, err := h.userRepository.GetAllUserIDs()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var sent int
	for _, id := range userIDs {
		if id == currentUserID {
			continue
		}
		notification := &models.Notification{
			Type:        models.NotificationAdminBroadcast,
			RecipientID: id,
			Content:     req.Content,
			Link:        req.Link,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			c.Logger().Errorf("failed to create broadcast notification for user %d: %v", id, err)
			continue
		}
		sent++
	}

	return c.JSON(http.StatusOK, echo.Map{"sent": sent})
}
