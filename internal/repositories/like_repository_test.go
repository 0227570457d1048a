package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLikeIncrementsCounter(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	repo := NewPostgresLikeRepository(db, NewPostgresStatsRepository(db))

	like, err := repo.CreateLike(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, like.AccountID)
	assert.Equal(t, post.ID, like.PostID)

	assert.Equal(t, int64(1), postStats(t, db, post.ID).Likes)
}

func TestCreateLikeIsIdempotentPerAccount(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	repo := NewPostgresLikeRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateLike(context.Background(), account.ID, post.ID)
	require.NoError(t, err)

	_, err = repo.CreateLike(context.Background(), account.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The failed duplicate must not bump the counter
	assert.Equal(t, int64(1), postStats(t, db, post.ID).Likes)
}

func TestCreateLikeMissingPost(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	repo := NewPostgresLikeRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateLike(context.Background(), account.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLikeSymmetry(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	post := createTestPost(t, db, account.ID, "hello")
	repo := NewPostgresLikeRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateLike(context.Background(), account.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteLike(context.Background(), account.ID, post.ID))

	assert.Equal(t, int64(0), postStats(t, db, post.ID).Likes)

	// A second unlike finds nothing to delete and must not touch the counter
	err = repo.DeleteLike(context.Background(), account.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), postStats(t, db, post.ID).Likes)
}

func TestGetLikedPostIDsBatch(t *testing.T) {
	db := newTestDB(t)
	alice := createTestAccount(t, db, "alice")
	bob := createTestAccount(t, db, "bob")
	first := createTestPost(t, db, alice.ID, "first")
	second := createTestPost(t, db, alice.ID, "second")
	third := createTestPost(t, db, alice.ID, "third")
	repo := NewPostgresLikeRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateLike(context.Background(), bob.ID, first.ID)
	require.NoError(t, err)
	_, err = repo.CreateLike(context.Background(), bob.ID, third.ID)
	require.NoError(t, err)
	_, err = repo.CreateLike(context.Background(), alice.ID, second.ID)
	require.NoError(t, err)

	liked, err := repo.GetLikedPostIDs(context.Background(), bob.ID, []uint{first.ID, second.ID, third.ID})
	require.NoError(t, err)
	assert.True(t, liked[first.ID])
	assert.False(t, liked[second.ID])
	assert.True(t, liked[third.ID])
}

func TestGetLikedPosts(t *testing.T) {
	db := newTestDB(t)
	alice := createTestAccount(t, db, "alice")
	bob := createTestAccount(t, db, "bob")
	first := createTestPost(t, db, alice.ID, "first")
	createTestPost(t, db, alice.ID, "second")
	repo := NewPostgresLikeRepository(db, NewPostgresStatsRepository(db))

	_, err := repo.CreateLike(context.Background(), bob.ID, first.ID)
	require.NoError(t, err)

	posts, err := repo.GetLikedPosts(context.Background(), bob.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, first.ID, posts[0].ID)
	require.NotNil(t, posts[0].Stats)
	assert.Equal(t, int64(1), posts[0].Stats.Likes)
}
