package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkCounterSymmetry(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	repo := NewPostgresBookmarkRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateBookmark(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), postStats(t, db, post.ID).Bookmarks)

	require.NoError(t, repo.DeleteBookmark(context.Background(), account.ID, post.ID))
	assert.Equal(t, int64(0), postStats(t, db, post.ID).Bookmarks)

	err = repo.DeleteBookmark(context.Background(), account.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), postStats(t, db, post.ID).Bookmarks)
}

func TestBookmarkDuplicate(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	repo := NewPostgresBookmarkRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateBookmark(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	_, err = repo.CreateBookmark(context.Background(), account.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, int64(1), postStats(t, db, post.ID).Bookmarks)
}

func TestBookmarksIndependentFromLikes(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	stats := NewPostgresStatsRepository(db)
	likes := NewPostgresLikeRepository(db, stats)
	bookmarks := NewPostgresBookmarkRepository(db, stats)

	_, err := likes.CreateLike(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	_, err = bookmarks.CreateBookmark(context.Background(), account.ID, post.ID)
	require.NoError(t, err)

	got := postStats(t, db, post.ID)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(1), got.Bookmarks)

	require.NoError(t, likes.DeleteLike(context.Background(), account.ID, post.ID))
	got = postStats(t, db, post.ID)
	assert.Equal(t, int64(0), got.Likes)
	assert.Equal(t, int64(1), got.Bookmarks)
}

func TestIsPostBookmarked(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	repo := NewPostgresBookmarkRepository(db, NewPostgresStatsRepository(db))

	bookmarked, err := repo.IsPostBookmarked(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	_, err = repo.CreateBookmark(context.Background(), account.ID, post.ID)
	require.NoError(t, err)

	bookmarked, err = repo.IsPostBookmarked(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)
}
