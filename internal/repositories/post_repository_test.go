package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unihelp-app/backend/internal/models"
)

func TestCreatePostSeedsZeroedStats(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	repo := NewPostgresPostRepository(db, NewPostgresStatsRepository(db))

	post, err := repo.CreatePost(context.Background(), account.ID, "hello", []string{"https://cdn.example.com/a.jpg"}, []string{"Go", "go"})
	require.NoError(t, err)

	require.NotNil(t, post.Stats)
	assert.Zero(t, post.Stats.Likes)
	assert.Zero(t, post.Stats.Comments)
	assert.Zero(t, post.Stats.Bookmarks)

	require.Len(t, post.Photos, 1)

	// Tag names are lower-cased and shared, so "Go" and "go" collapse
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "go", post.Tags[0].Name)
}

func TestCreatePostMissingAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreatePost(context.Background(), 999, "hello", nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// The rolled-back create must leave nothing behind
	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Zero(t, posts)
}

func TestGetAllPostsFiltersByTag(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	repo := NewPostgresPostRepository(db, NewPostgresStatsRepository(db))

	tagged, err := repo.CreatePost(context.Background(), account.ID, "about go", nil, []string{"go"})
	require.NoError(t, err)
	_, err = repo.CreatePost(context.Background(), account.ID, "about cooking", nil, []string{"food"})
	require.NoError(t, err)

	posts, err := repo.GetAllPosts(context.Background(), 0, 10, "GO")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, tagged.ID, posts[0].ID)

	all, err := repo.GetAllPosts(context.Background(), 0, 10, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdatePostReplacesPhotos(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	repo := NewPostgresPostRepository(db, NewPostgresStatsRepository(db))

	post, err := repo.CreatePost(context.Background(), account.ID, "hello", []string{"https://cdn.example.com/a.jpg"}, nil)
	require.NoError(t, err)

	updated, err := repo.UpdatePost(context.Background(), post.ID, "edited", []string{"https://cdn.example.com/b.jpg", "https://cdn.example.com/c.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	require.Len(t, updated.Photos, 2)
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	alice := createTestAccount(t, db, "alice")
	bob := createTestAccount(t, db, "bob")
	stats := NewPostgresStatsRepository(db)
	repo := NewPostgresPostRepository(db, stats)

	post, err := repo.CreatePost(context.Background(), alice.ID, "hello", nil, []string{"go"})
	require.NoError(t, err)

	_, err = NewPostgresLikeRepository(db, stats).CreateLike(context.Background(), bob.ID, post.ID)
	require.NoError(t, err)
	comment := &models.Comment{Content: "nice", PostID: post.ID, AuthorID: bob.ID}
	require.NoError(t, NewPostgresCommentRepository(db, stats).CreateComment(context.Background(), comment))

	require.NoError(t, repo.DeletePost(context.Background(), post.ID))

	_, err = repo.GetPostByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, owned := range []interface{}{
		&models.Like{}, &models.Comment{}, &models.PostStats{},
	} {
		var count int64
		require.NoError(t, db.Model(owned).Where("post_id = ?", post.ID).Count(&count).Error)
		assert.Zero(t, count)
	}

	// Shared tags survive post deletion
	var tags int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Equal(t, int64(1), tags)
}

func TestSearchPostsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	repo := NewPostgresPostRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreatePost(context.Background(), account.ID, "Learning Go generics", nil, nil)
	require.NoError(t, err)
	_, err = repo.CreatePost(context.Background(), account.ID, "dinner plans", nil, nil)
	require.NoError(t, err)

	posts, err := repo.SearchPosts(context.Background(), "gO GeNeRiCs", 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Contains(t, posts[0].Content, "generics")
}
