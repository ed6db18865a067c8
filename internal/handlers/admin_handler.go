package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// AdminHandler handles the admin panel HTTP requests. Every route here is
// registered behind the admin gate middleware.
type AdminHandler struct {
	adminRepository        repositories.AdminRepository
	userRepository         repositories.UserRepository
	profileRepository      repositories.UserProfileRepository
	postRepository         repositories.PostRepository
	replyRepository        repositories.ReplyRepository
	postLikeRepository     repositories.PostLikeRepository
	replyLikeRepository    repositories.ReplyLikeRepository
	savedRepository        repositories.SavedPostRepository
	notificationRepository repositories.NotificationRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	adminRepo repositories.AdminRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.UserProfileRepository,
	postRepo repositories.PostRepository,
	replyRepo repositories.ReplyRepository,
	postLikeRepo repositories.PostLikeRepository,
	replyLikeRepo repositories.ReplyLikeRepository,
	savedRepo repositories.SavedPostRepository,
	notifRepo repositories.NotificationRepository,
) *AdminHandler {
	return &AdminHandler{
		adminRepository:        adminRepo,
		userRepository:         userRepo,
		profileRepository:      profileRepo,
		postRepository:         postRepo,
		replyRepository:        replyRepo,
		postLikeRepository:     postLikeRepo,
		replyLikeRepository:    replyLikeRepo,
		savedRepository:        savedRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterAdminRoutes registers admin panel routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:user_id/role", h.UpdateRole)
	g.DELETE("/users/:user_id", h.DeleteUser)
}

// UserWithRole is one admin panel row
type UserWithRole struct {
	models.UserProfile
	Role string `json:"role"`
}

// ListUsers returns every member with their role for the admin panel
func (h *AdminHandler) ListUsers(c echo.Context) error {
	profiles, err := h.profileRepository.GetAllProfiles()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	adminIDs, err := h.adminRepository.GetAdminUserIDs()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	adminSet := make(map[uint]bool, len(adminIDs))
	for _, id := range adminIDs {
		adminSet[id] = true
	}

	rows := make([]UserWithRole, len(profiles))
	for i, p := range profiles {
		role := "standard"
		if adminSet[p.UserID] {
			role = "admin"
		}
		rows[i] = UserWithRole{UserProfile: p, Role: role}
	}

	return c.JSON(http.StatusOK, echo.Map{"users": rows})
}

// UpdateRole promotes or demotes a member. Admins cannot change their own
// role, so the panel can never lock itself out.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if userID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot change your own role")
	}

	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if req.Role == "admin" {
		err = h.adminRepository.Promote(userID)
	} else {
		err = h.adminRepository.Demote(userID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "role": req.Role})
}

// DeleteUser removes a member and everything they own: posts, replies,
// likes, saves, notifications, profile and role. Admins cannot delete
// themselves.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if userID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete your own account")
	}

	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	// Likes and saves first so no counters or bookmarks point at rows
	// removed below.
	likedPosts, err := h.postLikeRepository.GetLikedPostIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, postID := range likedPosts {
		if err := h.postLikeRepository.DeleteLike(postID, userID); err != nil {
			c.Logger().Errorf("failed to delete like on post %d: %v", postID, err)
			continue
		}
		if err := h.postRepository.DecrementLikes(postID); err != nil {
			c.Logger().Errorf("failed to decrement likes on post %d: %v", postID, err)
		}
	}

	likedReplies, err := h.replyLikeRepository.GetLikedReplyIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, replyID := range likedReplies {
		if err := h.replyLikeRepository.DeleteLike(replyID, userID); err != nil {
			c.Logger().Errorf("failed to delete like on reply %d: %v", replyID, err)
			continue
		}
		if err := h.replyRepository.DecrementLikes(replyID); err != nil {
			c.Logger().Errorf("failed to decrement likes on reply %d: %v", replyID, err)
		}
	}

	savedIDs, err := h.savedRepository.GetSavedPostIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, postID := range savedIDs {
		if err := h.savedRepository.UnsavePost(userID, postID); err != nil {
			c.Logger().Errorf("failed to unsave post %d: %v", postID, err)
		}
	}

	replies, err := h.replyRepository.GetRepliesByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, reply := range replies {
		if err := h.replyRepository.DeleteReply(reply.ID); err != nil {
			c.Logger().Errorf("failed to delete reply %d: %v", reply.ID, err)
		}
	}

	posts, err := h.postRepository.GetPostsByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, post := range posts {
		if err := h.postRepository.DeletePost(post.ID); err != nil {
			c.Logger().Errorf("failed to delete post %d: %v", post.ID, err)
		}
	}

	if err := h.notificationRepository.DeleteByRecipientID(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.profileRepository.DeleteByUserID(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// Demote is a no-op for standard members.
	if err := h.adminRepository.Demote(userID); err != nil && err.Error() != "admin not found" {
		c.Logger().Errorf("failed to remove admin role for user %d: %v", userID, err)
	}
	if err := h.userRepository.DeleteUser(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
