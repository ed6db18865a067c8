package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
	"github.com/pacifora/sahabat-ktb/backend/internal/thread"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository      repositories.PostRepository
	replyRepository     repositories.ReplyRepository
	postLikeRepository  repositories.PostLikeRepository
	replyLikeRepository repositories.ReplyLikeRepository
	savedRepository     repositories.SavedPostRepository
	profileRepository   repositories.UserProfileRepository
	adminRepository     repositories.AdminRepository
	userRepository      repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	replyRepo repositories.ReplyRepository,
	postLikeRepo repositories.PostLikeRepository,
	replyLikeRepo repositories.ReplyLikeRepository,
	savedRepo repositories.SavedPostRepository,
	profileRepo repositories.UserProfileRepository,
	adminRepo repositories.AdminRepository,
	userRepo repositories.UserRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:      postRepo,
		replyRepository:     replyRepo,
		postLikeRepository:  postLikeRepo,
		replyLikeRepository: replyLikeRepo,
		savedRepository:     savedRepo,
		profileRepository:   profileRepo,
		adminRepository:     adminRepo,
		userRepository:      userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:user_id/posts", h.GetUserPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	post := &models.Post{
		UserID:      user.ID,
		Name:        user.Name,
		Class:       user.Class,
		Title:       req.Title,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts returns all posts newest first, with reply counts and the
// viewer's like and save memberships for the feed page.
func (h *PostHandler) GetPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	replyCounts, err := h.replyRepository.GetReplyCounts(postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likedIDs, err := h.postLikeRepository.GetLikedPostIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	savedIDs, err := h.savedRepository.GetSavedPostIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profiles, err := h.authorProfiles(posts, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":        posts,
		"reply_counts": replyCounts,
		"liked_ids":    likedIDs,
		"saved_ids":    savedIDs,
		"profiles":     profiles,
	})
}

// GetPost returns a single post with its reply thread and the viewer's
// memberships, the full detail page payload in one round trip.
func (h *PostHandler) GetPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	replies, err := h.replyRepository.GetRepliesByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked, err := h.postLikeRepository.HasUserLikedPost(postID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	saved, err := h.savedRepository.IsPostSaved(currentUserID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	likedReplyIDs, err := h.replyLikeRepository.GetLikedReplyIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profiles, err := h.authorProfiles([]models.Post{*post}, replies)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	nodes := thread.Build(replies)

	return c.JSON(http.StatusOK, echo.Map{
		"post":            post,
		"thread":          nodes,
		"reply_count":     thread.Count(nodes),
		"liked":           liked,
		"saved":           saved,
		"liked_reply_ids": likedReplyIDs,
		"profiles":        profiles,
	})
}

// UpdatePost updates a post. Author only; admins cannot edit.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if post.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can edit this post")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post.Title = req.Title
	post.Content = req.Content
	post.IsAnonymous = req.IsAnonymous

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post. Allowed for the author and for admins.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if post.UserID != currentUserID {
		isAdmin, err := h.adminRepository.IsAdmin(currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this post")
		}
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetUserPosts returns the posts authored by a user, for the profile page.
// Anonymous posts are only included when the viewer is the author. The
// optional sort query parameter accepts "liked" to order by like count;
// anything else keeps the newest-first order.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetPostsByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if userID != currentUserID {
		visible := make([]models.Post, 0, len(posts))
		for _, p := range posts {
			if !p.IsAnonymous {
				visible = append(visible, p)
			}
		}
		posts = visible
	}

	if c.QueryParam("sort") == "liked" {
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Likes > posts[j].Likes
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// authorProfiles batches the live profile lookup for every non-anonymous
// author among the given posts and replies.
func (h *PostHandler) authorProfiles(posts []models.Post, replies []models.Reply) (map[uint]models.UserProfile, error) {
	seen := map[uint]bool{}
	var ids []uint
	add := func(userID uint, anonymous bool) {
		if anonymous || seen[userID] {
			return
		}
		seen[userID] = true
		ids = append(ids, userID)
	}
	for _, p := range posts {
		add(p.UserID, p.IsAnonymous)
	}
	for _, r := range replies {
		add(r.UserID, r.IsAnonymous)
	}
	return h.profileRepository.GetByUserIDs(ids)
}

// parseID parses a numeric path parameter into a uint ID.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
