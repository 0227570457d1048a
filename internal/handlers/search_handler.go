package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/feed"
	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
)

// SearchHandler handles combined search across posts, accounts and tags
type SearchHandler struct {
	postRepository    repositories.PostRepository
	accountRepository repositories.AccountRepository
	tagRepository     repositories.TagRepository
	composer          *feed.Composer
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(
	postRepo repositories.PostRepository,
	accountRepo repositories.AccountRepository,
	tagRepo repositories.TagRepository,
	composer *feed.Composer,
) *SearchHandler {
	return &SearchHandler{
		postRepository:    postRepo,
		accountRepository: accountRepo,
		tagRepository:     tagRepo,
		composer:          composer,
	}
}

// RegisterSearchRoutes registers the combined search route
func (h *SearchHandler) RegisterSearchRoutes(public *echo.Group) {
	public.GET("/search", h.Search)
}

// Search runs the query against posts, accounts and tags in one request
func (h *SearchHandler) Search(c echo.Context) error {
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

	accounts, err := h.accountRepository.SearchAccounts(query, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	compacts := make([]models.AccountCompact, 0, len(accounts))
	for _, a := range accounts {
		compacts = append(compacts, a.ToCompact())
	}

	tags, err := h.tagRepository.SearchTags(c.Request().Context(), query, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":    views,
		"accounts": compacts,
		"tags":     tags,
	})
}
