package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// ProfileHandler handles profile and settings HTTP requests
type ProfileHandler struct {
	profileRepository repositories.UserProfileRepository
	userRepository    repositories.UserRepository
	adminRepository   repositories.AdminRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.UserProfileRepository, userRepo repositories.UserRepository, adminRepo repositories.AdminRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		userRepository:    userRepo,
		adminRepository:   adminRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:user_id/profile", h.GetUserProfile)
}

// GetOwnProfile returns the viewer's profile together with the viewer's
// role, the session bootstrap payload.
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.profileRepository.GetByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	isAdmin, err := h.adminRepository.IsAdmin(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile":  profile,
		"is_admin": isAdmin,
	})
}

// UpdateProfile applies the settings page edits. The auth record's name
// and class follow the profile so denormalized rows written later agree.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
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

	profile, err := h.profileRepository.GetByUserID(currentUserID)
	if err != nil {
		profile = &models.UserProfile{UserID: currentUserID, Email: user.Email}
	}
	profile.Name = req.Name
	profile.Class = req.Class
	profile.Bio = req.Bio

	if err := h.profileRepository.UpsertProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.Name = req.Name
	user.Class = req.Class
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}

// GetUserProfile returns another member's public profile
func (h *ProfileHandler) GetUserProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	profile, err := h.profileRepository.GetByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}
