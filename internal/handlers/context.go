package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/middleware"
	"github.com/unihelp-app/backend/internal/models"
)

// getAccountIDFromContext returns the authenticated account's ID, or zero for
// an anonymous request. Zero doubles as the anonymous viewer ID in the feed
// composer.
func getAccountIDFromContext(c echo.Context) uint {
	claims, ok := c.Get(middleware.AccountContextKey).(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.AccountID
}

// paginationParams reads page/limit query parameters and converts them to an
// offset and limit, clamping limit to 50.
func paginationParams(c echo.Context) (skip, limit int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return (page - 1) * limit, limit
}
