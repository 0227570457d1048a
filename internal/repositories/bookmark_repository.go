package repositories

import (
	"context"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, accountID, postID uint) (*models.Bookmark, error)
	DeleteBookmark(ctx context.Context, accountID, postID uint) error
	IsPostBookmarked(ctx context.Context, accountID, postID uint) (bool, error)
	GetBookmarkedPostIDs(ctx context.Context, accountID uint, postIDs []uint) (map[uint]bool, error)
	GetBookmarkedPosts(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error)
}

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db    *gorm.DB
	stats StatsRepository
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB, stats StatsRepository) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db, stats: stats}
}

// CreateBookmark records a bookmark and increments the post's bookmark
// counter in the same transaction.
func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, accountID, postID uint) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{AccountID: accountID, PostID: postID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&posts).Error; err != nil {
			return err
		}
		if posts == 0 {
			return ErrNotFound
		}

		var existing int64
		if err := tx.Model(&models.Bookmark{}).
			Where("account_id = ? AND post_id = ?", accountID, postID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyExists
		}

		if err := tx.Create(bookmark).Error; err != nil {
			return translateError(err)
		}
		return r.stats.Increment(tx, postID, StatsBookmarks)
	})
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

// DeleteBookmark removes a bookmark and decrements the post's bookmark
// counter in the same transaction, gated on the delete affecting a row.
func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, accountID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("account_id = ? AND post_id = ?", accountID, postID).Delete(&models.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return r.stats.Decrement(tx, postID, StatsBookmarks)
	})
}

// IsPostBookmarked checks if an account has bookmarked a specific post
func (r *PostgresBookmarkRepository) IsPostBookmarked(ctx context.Context, accountID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetBookmarkedPostIDs returns, for a batch of posts, which of them the
// account has bookmarked. One query regardless of batch size.
func (r *PostgresBookmarkRepository) GetBookmarkedPostIDs(ctx context.Context, accountID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND post_id IN ?", accountID, postIDs).
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		result[b.PostID] = true
	}
	return result, nil
}

// GetBookmarkedPosts retrieves the posts an account has bookmarked, newest
// first, with all direct relations eagerly loaded for view assembly.
func (r *PostgresBookmarkRepository) GetBookmarkedPosts(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := withPostRelations(r.db.WithContext(ctx)).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.account_id = ?", accountID).
		Order("posts.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
