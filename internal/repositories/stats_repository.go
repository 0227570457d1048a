package repositories

import (
	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// StatsField identifies one denormalized counter of a PostStats row.
// Each field is written by exactly one interaction kind, so different kinds
// never contend on the same column.
type StatsField string

const (
	StatsComments  StatsField = "comments"
	StatsLikes     StatsField = "likes"
	StatsBookmarks StatsField = "bookmarks"
)

// StatsRepository is the counter ledger for post statistics. Increment and
// Decrement take the transaction handle of the detail-row mutation they
// mirror, so both commit or roll back as one unit of work.
type StatsRepository interface {
	CreateStats(tx *gorm.DB, postID uint) error
	GetStatsByPostID(postID uint) (*models.PostStats, error)
	Increment(tx *gorm.DB, postID uint, field StatsField) error
	Decrement(tx *gorm.DB, postID uint, field StatsField) error
	DecrementBy(tx *gorm.DB, postID uint, field StatsField, n int64) error
}

// PostgresStatsRepository implements StatsRepository for PostgreSQL
type PostgresStatsRepository struct {
	db *gorm.DB
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository
func NewPostgresStatsRepository(db *gorm.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// CreateStats creates the zeroed stats row for a freshly created post
func (r *PostgresStatsRepository) CreateStats(tx *gorm.DB, postID uint) error {
	return tx.Create(&models.PostStats{PostID: postID}).Error
}

// GetStatsByPostID retrieves the stats row for a post
func (r *PostgresStatsRepository) GetStatsByPostID(postID uint) (*models.PostStats, error) {
	var stats models.PostStats
	if err := r.db.Where("post_id = ?", postID).First(&stats).Error; err != nil {
		return nil, translateError(err)
	}
	return &stats, nil
}

// Increment adds one to the given counter. The arithmetic is evaluated
// server-side, so concurrent increments never lose updates.
func (r *PostgresStatsRepository) Increment(tx *gorm.DB, postID uint, field StatsField) error {
	return r.adjust(tx, postID, field, gorm.Expr(string(field)+" + 1"))
}

// Decrement subtracts one from the given counter. Callers must only invoke
// this after confirming the corresponding detail-row delete affected a row;
// an unconditional decrement can drive the counter negative under a
// double-delete race.
func (r *PostgresStatsRepository) Decrement(tx *gorm.DB, postID uint, field StatsField) error {
	return r.DecrementBy(tx, postID, field, 1)
}

// DecrementBy subtracts n from the given counter in one relative update.
// Used when a single delete statement removes several source rows, such as a
// comment taken down together with its replies.
func (r *PostgresStatsRepository) DecrementBy(tx *gorm.DB, postID uint, field StatsField, n int64) error {
	if n <= 0 {
		return nil
	}
	return r.adjust(tx, postID, field, gorm.Expr(string(field)+" - ?", n))
}

func (r *PostgresStatsRepository) adjust(tx *gorm.DB, postID uint, field StatsField, delta interface{}) error {
	res := tx.Model(&models.PostStats{}).
		Where("post_id = ?", postID).
		UpdateColumn(string(field), delta)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// No stats row means the post is gone or was created without one;
		// failing here rolls back the detail-row mutation as well.
		return ErrNotFound
	}
	return nil
}
