package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/cache"
	"github.com/unihelp-app/backend/internal/feed"
	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
	"go.uber.org/zap"
)

// PostHandler handles post and feed HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	composer       *feed.Composer
	feedCache      *cache.FeedCache
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, composer *feed.Composer, feedCache *cache.FeedCache) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		composer:       composer,
		feedCache:      feedCache,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.GetFeed)
	public.GET("/posts/search", h.SearchPosts)
	public.GET("/posts/:id", h.GetPost)

	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post for the authenticated account
func (h *PostHandler) CreatePost(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.CreatePost(c.Request().Context(), accountID, req.Content, req.Photos, req.Tags)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.invalidateFeed(c)

	view, err := h.composer.ComposeOne(c.Request().Context(), post, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// GetFeed returns a page of post views, newest first, optionally filtered by
// tag. Anonymous pages are served from the Redis cache when available;
// signed-in viewers always hit the database since their interaction flags are
// viewer-specific.
func (h *PostHandler) GetFeed(c echo.Context) error {
	viewerID := getAccountIDFromContext(c)
	skip, limit := paginationParams(c)
	page := skip/limit + 1
	tag := c.QueryParam("tag")

	key := cache.FeedKey(page, limit, tag)
	if viewerID == feed.AnonymousViewer {
		var cached []feed.PostView
		hit, err := h.feedCache.Get(c.Request().Context(), key, &cached)
		if err != nil {
			zap.L().Warn("feed cache read failed", zap.Error(err))
		}
		if hit {
			return c.JSON(http.StatusOK, echo.Map{"posts": cached})
		}
	}

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, limit, tag)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.composer.Compose(c.Request().Context(), posts, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if viewerID == feed.AnonymousViewer {
		if err := h.feedCache.Set(c.Request().Context(), key, views); err != nil {
			zap.L().Warn("feed cache write failed", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": views})
}

// GetPost returns a single post view
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	viewerID := getAccountIDFromContext(c)

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	view, err := h.composer.ComposeOne(c.Request().Context(), post, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// UpdatePost updates a post owned by the authenticated account
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	accountID := getAccountIDFromContext(c)

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.AccountID != accountID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own posts")
	}

	updated, err := h.postRepository.UpdatePost(c.Request().Context(), uint(id), req.Content, req.Photos)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.invalidateFeed(c)

	view, err := h.composer.ComposeOne(c.Request().Context(), updated, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// DeletePost deletes a post owned by the authenticated account
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	accountID := getAccountIDFromContext(c)

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.AccountID != accountID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.invalidateFeed(c)

	return c.NoContent(http.StatusNoContent)
}

// SearchPosts finds posts whose content matches the query
func (h *PostHandler) SearchPosts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	viewerID := getAccountIDFromContext(c)
	skip, limit := paginationParams(c)

	posts, err := h.postRepository.SearchPosts(c.Request().Context(), query, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.composer.Compose(c.Request().Context(), posts, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": views})
}

func (h *PostHandler) invalidateFeed(c echo.Context) {
	if err := h.feedCache.Invalidate(c.Request().Context()); err != nil {
		zap.L().Warn("feed cache invalidation failed", zap.Error(err))
	}
}
