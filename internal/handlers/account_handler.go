package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/feed"
	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
)

// AccountHandler handles account profile HTTP requests
type AccountHandler struct {
	accountRepository  repositories.AccountRepository
	postRepository     repositories.PostRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
	composer           *feed.Composer
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(
	accountRepo repositories.AccountRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	composer *feed.Composer,
) *AccountHandler {
	return &AccountHandler{
		accountRepository:  accountRepo,
		postRepository:     postRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		composer:           composer,
	}
}

// RegisterAccountRoutes registers account-related routes. Profile and post
// listings are readable anonymously; everything touching the signed-in
// account goes on the protected group.
func (h *AccountHandler) RegisterAccountRoutes(public, protected *echo.Group) {
	public.GET("/accounts/:id", h.GetAccount)
	public.GET("/accounts/:id/posts", h.GetAccountPosts)
	public.GET("/accounts/search", h.SearchAccounts)

	protected.GET("/accounts/me", h.GetMe)
	protected.PUT("/accounts/me", h.UpdateMe)
	protected.DELETE("/accounts/me", h.DeleteMe)
	protected.GET("/accounts/me/liked", h.GetLikedPosts)
	protected.GET("/accounts/me/bookmarked", h.GetBookmarkedPosts)
}

// GetAccount returns a public account profile
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid account ID")
	}

	account, err := h.accountRepository.GetAccountByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, account.ToCompact())
}

// GetAccountPosts returns an account's posts as viewer-specific views
func (h *AccountHandler) GetAccountPosts(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid account ID")
	}
	viewerID := getAccountIDFromContext(c)
	skip, limit := paginationParams(c)

	posts, err := h.postRepository.GetPostsByAccountID(c.Request().Context(), uint(id), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.composer.Compose(c.Request().Context(), posts, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": views})
}

// SearchAccounts searches accounts by username or email fragment
func (h *AccountHandler) SearchAccounts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	skip, limit := paginationParams(c)

	accounts, err := h.accountRepository.SearchAccounts(query, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compacts := make([]models.AccountCompact, 0, len(accounts))
	for _, a := range accounts {
		compacts = append(compacts, a.ToCompact())
	}
	return c.JSON(http.StatusOK, echo.Map{"accounts": compacts})
}

// GetMe returns the authenticated account's full profile
func (h *AccountHandler) GetMe(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	account, err := h.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateMe updates the authenticated account's profile
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	var req models.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetAccountByID(accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}

	if req.Username != "" {
		account.Username = req.Username
	}
	if req.Email != "" {
		account.Email = req.Email
	}
	if req.Avatar != "" {
		account.Avatar = req.Avatar
	}

	if err := h.accountRepository.UpdateAccount(account); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "Username or email already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, account)
}

// DeleteMe deletes the authenticated account
func (h *AccountHandler) DeleteMe(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	if err := h.accountRepository.DeleteAccount(accountID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikedPosts returns the posts the authenticated account has liked
func (h *AccountHandler) GetLikedPosts(c echo.Context) error {
	accountID := getAccountIDFromContext(c)
	skip, limit := paginationParams(c)

	posts, err := h.likeRepository.GetLikedPosts(c.Request().Context(), accountID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.composer.Compose(c.Request().Context(), posts, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": views})
}

// GetBookmarkedPosts returns the posts the authenticated account has bookmarked
func (h *AccountHandler) GetBookmarkedPosts(c echo.Context) error {
	accountID := getAccountIDFromContext(c)
	skip, limit := paginationParams(c)

	posts, err := h.bookmarkRepository.GetBookmarkedPosts(c.Request().Context(), accountID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.composer.Compose(c.Request().Context(), posts, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": views})
}
