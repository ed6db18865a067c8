package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// ReplyHandler handles reply-related HTTP requests
type ReplyHandler struct {
	replyRepository        repositories.ReplyRepository
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	adminRepository        repositories.AdminRepository
	notificationRepository repositories.NotificationRepository
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(
	replyRepo repositories.ReplyRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminRepository,
	notifRepo repositories.NotificationRepository,
) *ReplyHandler {
	return &ReplyHandler{
		replyRepository:        replyRepo,
		postRepository:         postRepo,
		userRepository:         userRepo,
		adminRepository:        adminRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterReplyRoutes registers reply-related routes
func (h *ReplyHandler) RegisterReplyRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/replies", h.CreateReply)
	g.GET("/posts/:post_id/replies", h.GetReplies)
	g.DELETE("/replies/:id", h.DeleteReply)
	g.GET("/users/:user_id/replies", h.GetUserReplies)
}

// CreateReply submits a reply to a post. A parent reply, when given, must
// belong to the same post and be top-level; the thread never nests deeper
// than two levels.
func (h *ReplyHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	var parent *models.Reply
	if req.ParentReplyID != nil {
		parent, err = h.replyRepository.GetReplyByID(*req.ParentReplyID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent reply not found")
		}
		if parent.PostID != postID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent reply belongs to a different post")
		}
		if !parent.TopLevel() {
			return echo.NewHTTPError(http.StatusBadRequest, "Replies can only nest one level deep")
		}
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	reply := &models.Reply{
		PostID:        postID,
		ParentReplyID: req.ParentReplyID,
		UserID:        user.ID,
		Name:          user.Name,
		Class:         user.Class,
		Content:       req.Content,
		IsAnonymous:   req.IsAnonymous,
	}

	if err := h.replyRepository.CreateReply(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifyRecipient(c, post, parent, reply)

	return c.JSON(http.StatusCreated, reply)
}

// notifyRecipient records a notification for the post owner (top-level
// reply) or the parent reply's author (nested reply). Self-replies never
// notify, and a failed write never fails the reply.
func (h *ReplyHandler) notifyRecipient(c echo.Context, post *models.Post, parent *models.Reply, reply *models.Reply) {
	notifType := models.NotificationPostReplied
	recipientID := post.UserID
	if parent != nil {
		notifType = models.NotificationCommentReplied
		recipientID = parent.UserID
	}
	if recipientID == reply.UserID {
		return
	}

	notification := &models.Notification{
		Type:        notifType,
		RecipientID: recipientID,
		ActorID:     &reply.UserID,
		PostID:      &post.ID,
		Link:        fmt.Sprintf("post-detail?id=%d", post.ID),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		c.Logger().Errorf("failed to create reply notification: %v", err)
	}
}

// GetReplies returns the flat reply list for a post, oldest first.
func (h *ReplyHandler) GetReplies(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	replies, err := h.replyRepository.GetRepliesByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}

// GetUserReplies returns the replies authored by a user, for the profile
// page. Anonymous replies are only included when the viewer is the author.
// sort=liked orders by like count instead of newest first.
func (h *ReplyHandler) GetUserReplies(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	replies, err := h.replyRepository.GetRepliesByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if userID != currentUserID {
		visible := make([]models.Reply, 0, len(replies))
		for _, r := range replies {
			if !r.IsAnonymous {
				visible = append(visible, r)
			}
		}
		replies = visible
	}

	if c.QueryParam("sort") == "liked" {
		sort.SliceStable(replies, func(i, j int) bool {
			return replies[i].Likes > replies[j].Likes
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}

// DeleteReply deletes a reply. Allowed for the author and for admins.
func (h *ReplyHandler) DeleteReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	replyID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reply ID")
	}

	reply, err := h.replyRepository.GetReplyByID(replyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
	}

	if reply.UserID != currentUserID {
		isAdmin, err := h.adminRepository.IsAdmin(currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this reply")
		}
	}

	if err := h.replyRepository.DeleteReply(replyID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
