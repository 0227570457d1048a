package repositories

import (
	"context"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// PollVoteRepository defines the interface for poll vote data operations
type PollVoteRepository interface {
	CreateVote(ctx context.Context, pollID, accountID uint, answerIndex int) (*models.PollVote, error)
	GetVote(ctx context.Context, pollID, accountID uint) (*models.PollVote, error)
	GetVotesForPolls(ctx context.Context, accountID uint, pollIDs []uint) (map[uint]int, error)
	CountVotesByAnswer(ctx context.Context, pollIDs []uint) (map[uint]map[int]int64, error)
}

// PostgresPollVoteRepository implements PollVoteRepository for PostgreSQL
type PostgresPollVoteRepository struct {
	db *gorm.DB
}

// NewPostgresPollVoteRepository creates a new PostgresPollVoteRepository
func NewPostgresPollVoteRepository(db *gorm.DB) *PostgresPollVoteRepository {
	return &PostgresPollVoteRepository{db: db}
}

// CreateVote records a vote after validating that the answer index belongs
// to the target poll. Returns ErrNotFound when the poll is absent,
// ErrInvalidAnswer when the index references no answer of the poll, and
// ErrAlreadyExists when the account has already voted.
func (r *PostgresPollVoteRepository) CreateVote(ctx context.Context, pollID, accountID uint, answerIndex int) (*models.PollVote, error) {
	vote := &models.PollVote{PollID: pollID, AccountID: accountID, AnswerIndex: answerIndex}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var polls int64
		if err := tx.Model(&models.Poll{}).Where("id = ?", pollID).Count(&polls).Error; err != nil {
			return err
		}
		if polls == 0 {
			return ErrNotFound
		}

		var answers int64
		if err := tx.Model(&models.PollAnswer{}).
			Where("poll_id = ? AND answer_index = ?", pollID, answerIndex).
			Count(&answers).Error; err != nil {
			return err
		}
		if answers == 0 {
			return ErrInvalidAnswer
		}

		var existing int64
		if err := tx.Model(&models.PollVote{}).
			Where("poll_id = ? AND account_id = ?", pollID, accountID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyExists
		}

		return translateError(tx.Create(vote).Error)
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// GetVote retrieves an account's vote on a poll, or ErrNotFound
func (r *PostgresPollVoteRepository) GetVote(ctx context.Context, pollID, accountID uint) (*models.PollVote, error) {
	var vote models.PollVote
	err := r.db.WithContext(ctx).
		Where("poll_id = ? AND account_id = ?", pollID, accountID).
		First(&vote).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &vote, nil
}

// GetVotesForPolls returns the account's chosen answer index per poll for a
// batch of polls. Polls the account has not voted on are absent from the map.
func (r *PostgresPollVoteRepository) GetVotesForPolls(ctx context.Context, accountID uint, pollIDs []uint) (map[uint]int, error) {
	result := make(map[uint]int)
	if len(pollIDs) == 0 {
		return result, nil
	}
	var votes []models.PollVote
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND poll_id IN ?", accountID, pollIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	for _, v := range votes {
		result[v.PollID] = v.AnswerIndex
	}
	return result, nil
}

// CountVotesByAnswer computes vote counts grouped by answer index for a
// batch of polls in a single aggregate query. Answers with no votes are
// absent from the inner map.
func (r *PostgresPollVoteRepository) CountVotesByAnswer(ctx context.Context, pollIDs []uint) (map[uint]map[int]int64, error) {
	result := make(map[uint]map[int]int64)
	if len(pollIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		PollID      uint
		AnswerIndex int
		Total       int64
	}
	err := r.db.WithContext(ctx).Model(&models.PollVote{}).
		Select("poll_id, answer_index, COUNT(*) AS total").
		Where("poll_id IN ?", pollIDs).
		Group("poll_id").
		Group("answer_index").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts, ok := result[row.PollID]
		if !ok {
			counts = make(map[int]int64)
			result[row.PollID] = counts
		}
		counts[row.AnswerIndex] = row.Total
	}
	return result, nil
}
