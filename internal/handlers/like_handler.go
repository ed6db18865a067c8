package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// LikeHandler handles post and reply like HTTP requests
type LikeHandler struct {
	postLikeRepository     repositories.PostLikeRepository
	replyLikeRepository    repositories.ReplyLikeRepository
	postRepository         repositories.PostRepository
	replyRepository        repositories.ReplyRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	postLikeRepo repositories.PostLikeRepository,
	replyLikeRepo repositories.ReplyLikeRepository,
	postRepo repositories.PostRepository,
	replyRepo repositories.ReplyRepository,
	notifRepo repositories.NotificationRepository,
) *LikeHandler {
	return &LikeHandler{
		postLikeRepository:     postLikeRepo,
		replyLikeRepository:    replyLikeRepo,
		postRepository:         postRepo,
		replyRepository:        replyRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.POST("/replies/:reply_id/likes", h.LikeReply)
	g.DELETE("/replies/:reply_id/likes", h.UnlikeReply)
}

// LikePost records the viewer's like on a post: membership row first, then
// the atomic counter.
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	hasLiked, err := h.postLikeRepository.HasUserLikedPost(postID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Post already liked by this user")
	}

	like := &models.PostLike{
		PostID: postID,
		UserID: currentUserID,
	}
	if err := h.postLikeRepository.CreateLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.IncrementLikes(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != currentUserID {
		notification := &models.Notification{
			Type:        models.NotificationPostLiked,
			RecipientID: post.UserID,
			ActorID:     &like.UserID,
			PostID:      &post.ID,
			Link:        fmt.Sprintf("post-detail?id=%d", post.ID),
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			c.Logger().Errorf("failed to create like notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikePost removes the viewer's like from a post.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
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

	if err := h.postLikeRepository.DeleteLike(postID, currentUserID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.DecrementLikes(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// LikeReply records the viewer's like on a reply. Reply likes never
// notify anyone.
func (h *LikeHandler) LikeReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	replyID, err := parseID(c.Param("reply_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reply ID")
	}

	if _, err := h.replyRepository.GetReplyByID(replyID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
	}

	like := &models.ReplyLike{
		ReplyID: replyID,
		UserID:  currentUserID,
	}
	if err := h.replyLikeRepository.CreateLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.replyRepository.IncrementLikes(replyID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikeReply removes the viewer's like from a reply.
func (h *LikeHandler) UnlikeReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	replyID, err := parseID(c.Param("reply_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reply ID")
	}

	if _, err := h.replyRepository.GetReplyByID(replyID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
	}

	if err := h.replyLikeRepository.DeleteLike(replyID, currentUserID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.replyRepository.DecrementLikes(replyID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
