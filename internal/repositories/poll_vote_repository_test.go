package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

func createTestPoll(t *testing.T, db *gorm.DB, accountID uint, answers ...string) *models.Poll {
	t.Helper()
	post := createTestPost(t, db, accountID, "poll post")
	poll, err := NewPostgresPollRepository(db).CreatePoll(context.Background(), post.ID, accountID, answers, 24*time.Hour)
	require.NoError(t, err)
	return poll
}

func TestCreatePollAssignsOrderedIndexes(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	poll := createTestPoll(t, db, account.ID, "red", "green", "blue")

	loaded, err := NewPostgresPollRepository(db).GetPollByID(context.Background(), poll.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Answers, 3)
	for i, answer := range loaded.Answers {
		assert.Equal(t, i+1, answer.AnswerIndex)
	}
	assert.Equal(t, "red", loaded.Answers[0].Text)
}

func TestCreatePollTwiceOnSamePost(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	poll := createTestPoll(t, db, account.ID, "yes", "no")

	_, err := NewPostgresPollRepository(db).CreatePoll(context.Background(), poll.PostID, account.ID, []string{"a", "b"}, time.Hour)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateVoteValidation(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	poll := createTestPoll(t, db, account.ID, "yes", "no")
	repo := NewPostgresPollVoteRepository(db)

	_, err := repo.CreateVote(context.Background(), 999, account.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Index 3 exists on no answer of a two-answer poll
	_, err = repo.CreateVote(context.Background(), poll.ID, account.ID, 3)
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = repo.CreateVote(context.Background(), poll.ID, account.ID, 2)
	require.NoError(t, err)

	// One vote per account per poll, even for a different answer
	_, err = repo.CreateVote(context.Background(), poll.ID, account.ID, 1)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCountVotesByAnswerGroupsAcrossPolls(t *testing.T) {
	db := newTestDB(t)
	alice := createTestAccount(t, db, "alice")
	bob := createTestAccount(t, db, "bob")
	carol := createTestAccount(t, db, "carol")
	first := createTestPoll(t, db, alice.ID, "yes", "no")
	second := createTestPoll(t, db, alice.ID, "red", "green", "blue")
	repo := NewPostgresPollVoteRepository(db)

	for _, vote := range []struct {
		accountID uint
		pollID    uint
		answer    int
	}{
		{alice.ID, first.ID, 1},
		{bob.ID, first.ID, 1},
		{carol.ID, first.ID, 2},
		{bob.ID, second.ID, 3},
	} {
		_, err := repo.CreateVote(context.Background(), vote.pollID, vote.accountID, vote.answer)
		require.NoError(t, err)
	}

	tallies, err := repo.CountVotesByAnswer(context.Background(), []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), tallies[first.ID][1])
	assert.Equal(t, int64(1), tallies[first.ID][2])
	assert.Equal(t, int64(1), tallies[second.ID][3])
	// Unvoted answers are simply absent
	_, ok := tallies[second.ID][1]
	assert.False(t, ok)
}

func TestGetVotesForPolls(t *testing.T) {
	db := newTestDB(t)
	alice := createTestAccount(t, db, "alice")
	bob := createTestAccount(t, db, "bob")
	first := createTestPoll(t, db, alice.ID, "yes", "no")
	second := createTestPoll(t, db, alice.ID, "yes", "no")
	repo := NewPostgresPollVoteRepository(db)

	_, err := repo.CreateVote(context.Background(), first.ID, bob.ID, 2)
	require.NoError(t, err)

	votes, err := repo.GetVotesForPolls(context.Background(), bob.ID, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{first.ID: 2}, votes)
}

func TestDeletePollRemovesAnswersAndVotes(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "alice")
	poll := createTestPoll(t, db, account.ID, "yes", "no")
	polls := NewPostgresPollRepository(db)
	votes := NewPostgresPollVoteRepository(db)

	_, err := votes.CreateVote(context.Background(), poll.ID, account.ID, 1)
	require.NoError(t, err)

	require.NoError(t, polls.DeletePoll(context.Background(), poll.ID))

	_, err = polls.GetPollByID(context.Background(), poll.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var answers, remaining int64
	require.NoError(t, db.Model(&models.PollAnswer{}).Where("poll_id = ?", poll.ID).Count(&answers).Error)
	require.NoError(t, db.Model(&models.PollVote{}).Where("poll_id = ?", poll.ID).Count(&remaining).Error)
	assert.Zero(t, answers)
	assert.Zero(t, remaining)
}
