package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// SiteContentHandler serves the editable site pages (community guidelines,
// announcements). Reads are open to every member; writes sit behind the
// admin gate.
type SiteContentHandler struct {
	siteContentRepository repositories.SiteContentRepository
}

// NewSiteContentHandler creates a new SiteContentHandler
func NewSiteContentHandler(siteContentRepo repositories.SiteContentRepository) *SiteContentHandler {
	return &SiteContentHandler{siteContentRepository: siteContentRepo}
}

// RegisterSiteContentRoutes registers the member-facing page route
func (h *SiteContentHandler) RegisterSiteContentRoutes(g *echo.Group) {
	g.GET("/pages/:slug", h.GetPage)
}

// RegisterAdminSiteContentRoutes registers the editor route behind the
// admin gate
func (h *SiteContentHandler) RegisterAdminSiteContentRoutes(g *echo.Group) {
	g.PUT("/pages/:slug", h.UpdatePage)
}

// GetPage returns a site page by slug
func (h *SiteContentHandler) GetPage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	slug := c.Param("slug")
	content, err := h.siteContentRepository.GetPage(c.Request().Context(), slug)
	if err != nil {
		if err.Error() == "page not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Page not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, content)
}

// UpdatePage creates or replaces a site page
func (h *SiteContentHandler) UpdatePage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateSiteContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	content := &models.SiteContent{
		Page:      c.Param("slug"),
		Content:   req.Content,
		UpdatedBy: currentUserID,
	}
	if err := h.siteContentRepository.UpsertPage(c.Request().Context(), content); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, content)
}
