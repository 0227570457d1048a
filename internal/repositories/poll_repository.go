package repositories

import (
	"context"
	"time"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// PollRepository defines the interface for poll data operations
type PollRepository interface {
	CreatePoll(ctx context.Context, postID, accountID uint, answers []string, duration time.Duration) (*models.Poll, error)
	GetPollByID(ctx context.Context, id uint) (*models.Poll, error)
	DeletePoll(ctx context.Context, id uint) error
}

// PostgresPollRepository implements PollRepository for PostgreSQL
type PostgresPollRepository struct {
	db *gorm.DB
}

// NewPostgresPollRepository creates a new PostgresPollRepository
func NewPostgresPollRepository(db *gorm.DB) *PostgresPollRepository {
	return &PostgresPollRepository{db: db}
}

// CreatePoll attaches a poll with its ordered answers to a post. Answer
// indexes are 1-based in creation order. Returns ErrNotFound when the post
// is absent and ErrAlreadyExists when the post already has a poll.
func (r *PostgresPollRepository) CreatePoll(ctx context.Context, postID, accountID uint, answers []string, duration time.Duration) (*models.Poll, error) {
	poll := &models.Poll{
		PostID:    postID,
		AccountID: accountID,
		ExpiresAt: time.Now().Add(duration),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&posts).Error; err != nil {
			return err
		}
		if posts == 0 {
			return ErrNotFound
		}

		var existing int64
		if err := tx.Model(&models.Poll{}).Where("post_id = ?", postID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyExists
		}

		for i, text := range answers {
			poll.Answers = append(poll.Answers, models.PollAnswer{
				Text:        text,
				AnswerIndex: i + 1,
			})
		}
		return translateError(tx.Create(poll).Error)
	})
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// GetPollByID retrieves a poll with its answers ordered by answer index
func (r *PostgresPollRepository) GetPollByID(ctx context.Context, id uint) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_index ASC")
		}).
		First(&poll, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &poll, nil
}

// DeletePoll removes a poll together with its answers and votes
func (r *PostgresPollRepository) DeletePoll(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&models.PollVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&models.PollAnswer{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Poll{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
