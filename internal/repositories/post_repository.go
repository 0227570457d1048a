package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// withPostRelations eagerly loads the direct relations the feed composer
// expects on every post: author, stats, photos, tags and poll with answers.
func withPostRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Account").
		Preload("Stats").
		Preload("Photos").
		Preload("Tags").
		Preload("Poll").
		Preload("Poll.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_index ASC")
		})
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, accountID uint, content string, photos, tags []string) (*models.Post, error)
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int, tagName string) ([]models.Post, error)
	GetPostsByAccountID(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error)
	UpdatePost(ctx context.Context, id uint, content string, photos []string) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error
	SearchPosts(ctx context.Context, query string, skip, limit int) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db    *gorm.DB
	stats StatsRepository
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB, stats StatsRepository) *PostgresPostRepository {
	return &PostgresPostRepository{db: db, stats: stats}
}

// CreatePost creates a post together with its photos, tags and zeroed stats
// row in one transaction. Tags are resolved get-or-create by lower-cased name.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, accountID uint, content string, photos, tags []string) (*models.Post, error) {
	post := &models.Post{Content: content, AccountID: accountID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accounts int64
		if err := tx.Model(&models.Account{}).Where("id = ?", accountID).Count(&accounts).Error; err != nil {
			return err
		}
		if accounts == 0 {
			return ErrNotFound
		}

		if err := tx.Create(post).Error; err != nil {
			return translateError(err)
		}

		for _, url := range photos {
			if err := tx.Create(&models.Photo{URL: url, PostID: post.ID}).Error; err != nil {
				return err
			}
		}

		for _, name := range tags {
			var tag models.Tag
			if err := tx.Where("name = ?", strings.ToLower(name)).
				FirstOrCreate(&tag, models.Tag{Name: strings.ToLower(name)}).Error; err != nil {
				return err
			}
			if err := tx.Model(post).Association("Tags").Append(&tag); err != nil {
				return err
			}
		}

		return r.stats.CreateStats(tx, post.ID)
	})
	if err != nil {
		return nil, err
	}
	return r.GetPostByID(ctx, post.ID)
}

// GetPostByID retrieves a post with all direct relations eagerly loaded
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := withPostRelations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// GetAllPosts retrieves posts newest first, optionally filtered by tag name
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context, skip, limit int, tagName string) ([]models.Post, error) {
	var posts []models.Post
	query := withPostRelations(r.db.WithContext(ctx))
	if tagName != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", strings.ToLower(tagName))
	}
	err := query.
		Order("posts.created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetPostsByAccountID retrieves an account's own posts, newest first
func (r *PostgresPostRepository) GetPostsByAccountID(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := withPostRelations(r.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// UpdatePost replaces a post's content and photo set
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id uint, content string, photos []string) (*models.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return translateError(err)
		}

		if err := tx.Model(&post).UpdateColumn("content", content).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		for _, url := range photos {
			if err := tx.Create(&models.Photo{URL: url, PostID: id}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetPostByID(ctx, id)
}

// DeletePost removes a post and everything it owns: stats, photos, poll with
// answers and votes, likes, bookmarks, comments and tag associations, all in
// one transaction. Shared tags themselves are left in place.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return translateError(err)
		}

		var poll models.Poll
		err := tx.Where("post_id = ?", id).First(&poll).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&poll).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		for _, owned := range []interface{}{
			&models.Photo{}, &models.Like{}, &models.Bookmark{}, &models.Comment{}, &models.PostStats{},
		} {
			if err := tx.Where("post_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&post).Error
	})
}

// SearchPosts finds posts whose content matches the query, case-insensitive
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query string, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := withPostRelations(r.db.WithContext(ctx)).
		Where("LOWER(content) LIKE LOWER(?)", "%"+query+"%").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
