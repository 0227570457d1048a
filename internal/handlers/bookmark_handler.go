package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/repositories"
)

// BookmarkHandler handles HTTP requests related to bookmarks
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository) *BookmarkHandler {
	return &BookmarkHandler{bookmarkRepository: bookmarkRepo}
}

// RegisterBookmarkRoutes registers bookmark-related routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(protected *echo.Group) {
	protected.POST("/posts/:post_id/bookmark", h.BookmarkPost)
	protected.DELETE("/posts/:post_id/bookmark", h.UnbookmarkPost)
	protected.GET("/posts/:post_id/bookmark", h.GetBookmarkStatus)
}

// BookmarkPost handles bookmarking a post
func (h *BookmarkHandler) BookmarkPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	accountID := getAccountIDFromContext(c)

	bookmark, err := h.bookmarkRepository.CreateBookmark(c.Request().Context(), accountID, uint(postID))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		case errors.Is(err, repositories.ErrAlreadyExists):
			return echo.NewHTTPError(http.StatusConflict, "Post already bookmarked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, bookmark)
}

// UnbookmarkPost handles removing a bookmark from a post
func (h *BookmarkHandler) UnbookmarkPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	accountID := getAccountIDFromContext(c)

	if err := h.bookmarkRepository.DeleteBookmark(c.Request().Context(), accountID, uint(postID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetBookmarkStatus checks if the authenticated account has bookmarked a post
func (h *BookmarkHandler) GetBookmarkStatus(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	accountID := getAccountIDFromContext(c)

	bookmarked, err := h.bookmarkRepository.IsPostBookmarked(c.Request().Context(), accountID, uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "is_bookmarked": bookmarked})
}
