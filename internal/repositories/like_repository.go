package repositories

import (
	"context"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, accountID, postID uint) (*models.Like, error)
	DeleteLike(ctx context.Context, accountID, postID uint) error
	IsPostLiked(ctx context.Context, accountID, postID uint) (bool, error)
	GetLikedPostIDs(ctx context.Context, accountID uint, postIDs []uint) (map[uint]bool, error)
	GetLikedPosts(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db    *gorm.DB
	stats StatsRepository
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB, stats StatsRepository) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db, stats: stats}
}

// CreateLike records a like and increments the post's like counter in the
// same transaction. Returns ErrNotFound when the post is absent and
// ErrAlreadyExists when the account already liked it.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, accountID, postID uint) (*models.Like, error) {
	like := &models.Like{AccountID: accountID, PostID: postID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&posts).Error; err != nil {
			return err
		}
		if posts == 0 {
			return ErrNotFound
		}

		var existing int64
		if err := tx.Model(&models.Like{}).
			Where("account_id = ? AND post_id = ?", accountID, postID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyExists
		}

		if err := tx.Create(like).Error; err != nil {
			return translateError(err)
		}
		return r.stats.Increment(tx, postID, StatsLikes)
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteLike removes a like and decrements the post's like counter in the
// same transaction. The decrement is gated on the delete having affected a
// row, so a double unlike cannot drive the counter negative.
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, accountID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("account_id = ? AND post_id = ?", accountID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return r.stats.Decrement(tx, postID, StatsLikes)
	})
}

// IsPostLiked checks if an account has liked a specific post. Absence is a
// normal false, not an error.
func (r *PostgresLikeRepository) IsPostLiked(ctx context.Context, accountID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetLikedPostIDs returns, for a batch of posts, which of them the account
// has liked. One query regardless of batch size.
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, accountID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND post_id IN ?", accountID, postIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}

// GetLikedPosts retrieves the posts an account has liked, newest first, with
// all direct relations eagerly loaded for view assembly.
func (r *PostgresLikeRepository) GetLikedPosts(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := withPostRelations(r.db.WithContext(ctx)).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.account_id = ?", accountID).
		Order("posts.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
