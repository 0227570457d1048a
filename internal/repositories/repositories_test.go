package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway SQLite database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Post{},
		&models.PostStats{},
		&models.Photo{},
		&models.Tag{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Poll{},
		&models.PollAnswer{},
		&models.PollVote{},
	))
	return db
}

func createTestAccount(t *testing.T, db *gorm.DB, username string) *models.Account {
	t.Helper()
	account := &models.Account{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "hashed",
		IsVerified: true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func createTestPost(t *testing.T, db *gorm.DB, accountID uint, content string) *models.Post {
	t.Helper()
	repo := NewPostgresPostRepository(db, NewPostgresStatsRepository(db))
	post, err := repo.CreatePost(context.Background(), accountID, content, nil, nil)
	require.NoError(t, err)
	return post
}

func postStats(t *testing.T, db *gorm.DB, postID uint) *models.PostStats {
	t.Helper()
	stats, err := NewPostgresStatsRepository(db).GetStatsByPostID(postID)
	require.NoError(t, err)
	return stats
}
