package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/unihelp-app/backend/internal/cache"
	"github.com/unihelp-app/backend/internal/feed"
	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
	"go.uber.org/zap"
)

// PollHandler handles poll-related HTTP requests
type PollHandler struct {
	postRepository repositories.PostRepository
	pollRepository repositories.PollRepository
	voteRepository repositories.PollVoteRepository
	composer       *feed.Composer
	feedCache      *cache.FeedCache
}

// NewPollHandler creates a new PollHandler
func NewPollHandler(
	postRepo repositories.PostRepository,
	pollRepo repositories.PollRepository,
	voteRepo repositories.PollVoteRepository,
	composer *feed.Composer,
	feedCache *cache.FeedCache,
) *PollHandler {
	return &PollHandler{
		postRepository: postRepo,
		pollRepository: pollRepo,
		voteRepository: voteRepo,
		composer:       composer,
		feedCache:      feedCache,
	}
}

// RegisterPollRoutes registers poll-related routes
func (h *PollHandler) RegisterPollRoutes(public, protected *echo.Group) {
	public.GET("/polls/:id", h.GetPoll)

	protected.POST("/polls", h.CreatePoll)
	protected.POST("/polls/:id/vote", h.Vote)
	protected.DELETE("/polls/:id", h.DeletePoll)
}

// CreatePoll creates a post carrying a poll with its answer choices
func (h *PollHandler) CreatePoll(c echo.Context) error {
	accountID := getAccountIDFromContext(c)

	var req models.CreatePollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	duration := time.Duration(req.Days)*24*time.Hour +
		time.Duration(req.Hours)*time.Hour +
		time.Duration(req.Minutes)*time.Minute
	if duration <= 0 {
		duration = 24 * time.Hour
	}

	answers := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, a.Text)
	}

	post, err := h.postRepository.CreatePost(c.Request().Context(), accountID, req.Content, nil, nil)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.pollRepository.CreatePoll(c.Request().Context(), post.ID, accountID, answers, duration); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.feedCache.Invalidate(c.Request().Context()); err != nil {
		zap.L().Warn("feed cache invalidation failed", zap.Error(err))
	}

	// Reload so the view carries the poll with its answers
	post, err = h.postRepository.GetPostByID(c.Request().Context(), post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	view, err := h.composer.ComposeOne(c.Request().Context(), post, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// GetPoll returns a poll with vote counts and the viewer's selection
func (h *PollHandler) GetPoll(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid poll ID")
	}
	viewerID := getAccountIDFromContext(c)

	poll, err := h.pollRepository.GetPollByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	view, err := h.composer.TallyPoll(c.Request().Context(), poll, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// Vote records the authenticated account's vote on a poll and returns the
// updated tally.
func (h *PollHandler) Vote(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid poll ID")
	}
	accountID := getAccountIDFromContext(c)

	var req models.VotePollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.voteRepository.CreateVote(c.Request().Context(), uint(id), accountID, req.AnswerIndex); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
		case errors.Is(err, repositories.ErrInvalidAnswer):
			return echo.NewHTTPError(http.StatusBadRequest, "Answer does not belong to this poll")
		case errors.Is(err, repositories.ErrAlreadyExists):
			return echo.NewHTTPError(http.StatusConflict, "Already voted on this poll")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	poll, err := h.pollRepository.GetPollByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	view, err := h.composer.TallyPoll(c.Request().Context(), poll, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// DeletePoll deletes a poll owned by the authenticated account
func (h *PollHandler) DeletePoll(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid poll ID")
	}
	accountID := getAccountIDFromContext(c)

	poll, err := h.pollRepository.GetPollByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if poll.AccountID != accountID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own polls")
	}

	if err := h.pollRepository.DeletePoll(c.Request().Context(), uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
