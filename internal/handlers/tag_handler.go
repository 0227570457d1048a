package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/repositories"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagRepository repositories.TagRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagRepo repositories.TagRepository) *TagHandler {
	return &TagHandler{tagRepository: tagRepo}
}

// RegisterTagRoutes registers tag-related routes
func (h *TagHandler) RegisterTagRoutes(public *echo.Group) {
	public.GET("/tags", h.GetAllTags)
	public.GET("/tags/search", h.SearchTags)
}

// GetAllTags returns every tag
func (h *TagHandler) GetAllTags(c echo.Context) error {
	tags, err := h.tagRepository.GetAllTags(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

// SearchTags finds tags by name fragment
func (h *TagHandler) SearchTags(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	skip, limit := paginationParams(c)

	tags, err := h.tagRepository.SearchTags(c.Request().Context(), query, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}
