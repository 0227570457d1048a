package repositories

import (
	"context"
	"strings"

	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error)
	GetTagByName(ctx context.Context, name string) (*models.Tag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	SearchTags(ctx context.Context, query string, skip, limit int) ([]models.Tag, error)
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// GetOrCreateTag returns the tag with the given lower-cased name, creating
// it when absent. Tag names are shared across posts.
func (r *PostgresTagRepository) GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	name = strings.ToLower(name)
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&tag, models.Tag{Name: name}).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// GetTagByName retrieves a tag by its lower-cased name
func (r *PostgresTagRepository) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", strings.ToLower(name)).First(&tag).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// GetAllTags retrieves all tags
func (r *PostgresTagRepository) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// SearchTags finds tags whose name matches the query, case-insensitive
func (r *PostgresTagRepository) SearchTags(ctx context.Context, query string, skip, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Where("name LIKE LOWER(?)", "%"+strings.ToLower(query)+"%").
		Offset(skip).
		Limit(limit).
		Find(&tags).Error
	return tags, err
}
