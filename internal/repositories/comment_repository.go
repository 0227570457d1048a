package repositories

import (
	"context"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error)
	GetReplies(ctx context.Context, commentID uint, skip, limit int) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db    *gorm.DB
	stats StatsRepository
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB, stats StatsRepository) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db, stats: stats}
}

// CreateComment inserts a comment and increments the post's comment counter
// in the same transaction. Replies must reference an existing parent comment
// on the same post.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&posts).Error; err != nil {
			return err
		}
		if posts == 0 {
			return ErrNotFound
		}

		if comment.ParentID != nil {
			var parents int64
			if err := tx.Model(&models.Comment{}).
				Where("id = ? AND post_id = ?", *comment.ParentID, comment.PostID).
				Count(&parents).Error; err != nil {
				return err
			}
			if parents == 0 {
				return ErrNotFound
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return translateError(err)
		}
		return r.stats.Increment(tx, comment.PostID, StatsComments)
	})
}

// GetCommentByID retrieves a comment with its author
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves the top-level comments of a post with their
// authors, newest first. Replies are fetched separately via GetReplies.
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// GetReplies retrieves the replies to a comment with their authors, newest first
func (r *PostgresCommentRepository) GetReplies(ctx context.Context, commentID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ?", commentID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// UpdateComment replaces a comment's content in a single column update, so a
// concurrent update of other columns cannot be overwritten.
func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error) {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetCommentByID(ctx, id)
}

// DeleteComment removes a comment together with its entire reply subtree and
// decrements the post's comment counter by the number of rows actually
// deleted, in the same transaction. Replies can nest, so the subtree is
// collected level by level before one bulk delete; leaving a level behind
// would orphan rows whose parent_id references a deleted comment.
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return translateError(err)
		}

		ids := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		res := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return r.stats.DecrementBy(tx, comment.PostID, StatsComments, res.RowsAffected)
	})
}
