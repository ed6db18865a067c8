package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
)

// AdminOnlyMiddleware gates a route group to members of the admins table.
// It runs after JWTAuthMiddleware and reads the claims that one set.
func AdminOnlyMiddleware(adminRepo repositories.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			isAdmin, err := adminRepo.IsAdmin(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check admin role")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
			}

			return next(c)
		}
	}
}
