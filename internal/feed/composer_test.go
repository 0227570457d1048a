package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unihelp-app/backend/internal/models"
)

// fakeLikes implements repositories.LikeRepository over an in-memory set
type fakeLikes struct {
	liked        map[uint]bool
	batchQueries int
}

func (f *fakeLikes) CreateLike(ctx context.Context, accountID, postID uint) (*models.Like, error) {
	return nil, nil
}
func (f *fakeLikes) DeleteLike(ctx context.Context, accountID, postID uint) error { return nil }
func (f *fakeLikes) IsPostLiked(ctx context.Context, accountID, postID uint) (bool, error) {
	return f.liked[postID], nil
}
func (f *fakeLikes) GetLikedPostIDs(ctx context.Context, accountID uint, postIDs []uint) (map[uint]bool, error) {
	f.batchQueries++
	result := make(map[uint]bool)
	for _, id := range postIDs {
		if f.liked[id] {
			result[id] = true
		}
	}
	return result, nil
}
func (f *fakeLikes) GetLikedPosts(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error) {
	return nil, nil
}

// fakeBookmarks implements repositories.BookmarkRepository over an in-memory set
type fakeBookmarks struct {
	bookmarked   map[uint]bool
	batchQueries int
}

func (f *fakeBookmarks) CreateBookmark(ctx context.Context, accountID, postID uint) (*models.Bookmark, error) {
	return nil, nil
}
func (f *fakeBookmarks) DeleteBookmark(ctx context.Context, accountID, postID uint) error {
	return nil
}
func (f *fakeBookmarks) IsPostBookmarked(ctx context.Context, accountID, postID uint) (bool, error) {
	return f.bookmarked[postID], nil
}
func (f *fakeBookmarks) GetBookmarkedPostIDs(ctx context.Context, accountID uint, postIDs []uint) (map[uint]bool, error) {
	f.batchQueries++
	result := make(map[uint]bool)
	for _, id := range postIDs {
		if f.bookmarked[id] {
			result[id] = true
		}
	}
	return result, nil
}
func (f *fakeBookmarks) GetBookmarkedPosts(ctx context.Context, accountID uint, skip, limit int) ([]models.Post, error) {
	return nil, nil
}

// fakeVotes implements repositories.PollVoteRepository over fixed tallies
type fakeVotes struct {
	tallies      map[uint]map[int]int64
	viewerVotes  map[uint]int
	voteLookups  int
	tallyLookups int
}

func (f *fakeVotes) CreateVote(ctx context.Context, pollID, accountID uint, answerIndex int) (*models.PollVote, error) {
	return nil, nil
}
func (f *fakeVotes) GetVote(ctx context.Context, pollID, accountID uint) (*models.PollVote, error) {
	return nil, nil
}
func (f *fakeVotes) GetVotesForPolls(ctx context.Context, accountID uint, pollIDs []uint) (map[uint]int, error) {
	f.voteLookups++
	return f.viewerVotes, nil
}
func (f *fakeVotes) CountVotesByAnswer(ctx context.Context, pollIDs []uint) (map[uint]map[int]int64, error) {
	f.tallyLookups++
	return f.tallies, nil
}

func testPosts() []models.Post {
	author := &models.Account{ID: 7, Username: "alice"}
	return []models.Post{
		{
			ID:      1,
			Content: "first",
			Account: author,
			Stats:   &models.PostStats{PostID: 1, Likes: 3, Comments: 2},
			Photos:  []models.Photo{{URL: "https://cdn.example.com/a.jpg"}},
			Tags:    []models.Tag{{Name: "go"}},
		},
		{
			ID:      2,
			Content: "second",
			Account: author,
			Stats:   &models.PostStats{PostID: 2},
			Poll: &models.Poll{
				ID:     10,
				PostID: 2,
				Answers: []models.PollAnswer{
					{ID: 101, AnswerIndex: 1, Text: "yes"},
					{ID: 102, AnswerIndex: 2, Text: "no"},
				},
			},
		},
	}
}

func TestComposePreservesOrderAndProjects(t *testing.T) {
	likes := &fakeLikes{liked: map[uint]bool{2: true}}
	bookmarks := &fakeBookmarks{bookmarked: map[uint]bool{1: true}}
	votes := &fakeVotes{
		tallies:     map[uint]map[int]int64{10: {1: 4, 2: 1}},
		viewerVotes: map[uint]int{10: 1},
	}
	composer := NewComposer(likes, bookmarks, votes)

	views, err := composer.Compose(context.Background(), testPosts(), 7)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, uint(1), views[0].ID)
	assert.Equal(t, uint(2), views[1].ID)
	assert.Equal(t, "alice", views[0].Author.Username)
	assert.Equal(t, int64(3), views[0].Stats.Likes)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, views[0].Photos)
	assert.Equal(t, []string{"go"}, views[0].Tags)

	assert.True(t, views[0].IsBookmarked)
	assert.False(t, views[0].IsLiked)
	assert.True(t, views[1].IsLiked)
	assert.False(t, views[1].IsBookmarked)

	require.NotNil(t, views[1].Poll)
	require.Len(t, views[1].Poll.Answers, 2)
	assert.Equal(t, int64(4), views[1].Poll.Answers[0].VoteCount)
	assert.True(t, views[1].Poll.Answers[0].IsSelected)
	assert.False(t, views[1].Poll.Answers[1].IsSelected)
}

func TestComposeIsDeterministic(t *testing.T) {
	likes := &fakeLikes{liked: map[uint]bool{2: true}}
	bookmarks := &fakeBookmarks{bookmarked: map[uint]bool{1: true}}
	votes := &fakeVotes{
		tallies:     map[uint]map[int]int64{10: {1: 4, 2: 1}},
		viewerVotes: map[uint]int{10: 1},
	}
	composer := NewComposer(likes, bookmarks, votes)

	posts := testPosts()
	first, err := composer.Compose(context.Background(), posts, 7)
	require.NoError(t, err)
	second, err := composer.Compose(context.Background(), posts, 7)
	require.NoError(t, err)

	// Same posts, same viewer, unchanged state: byte-for-byte the same views
	assert.Equal(t, first, second)
}

func TestComposeAnonymousViewerSkipsViewerLookups(t *testing.T) {
	likes := &fakeLikes{liked: map[uint]bool{1: true, 2: true}}
	bookmarks := &fakeBookmarks{bookmarked: map[uint]bool{1: true}}
	votes := &fakeVotes{tallies: map[uint]map[int]int64{10: {1: 4}}}
	composer := NewComposer(likes, bookmarks, votes)

	views, err := composer.Compose(context.Background(), testPosts(), AnonymousViewer)
	require.NoError(t, err)

	// Flags stay neutral and no per-viewer query ran
	for _, view := range views {
		assert.False(t, view.IsLiked)
		assert.False(t, view.IsBookmarked)
	}
	assert.Zero(t, likes.batchQueries)
	assert.Zero(t, bookmarks.batchQueries)
	assert.Zero(t, votes.voteLookups)

	// Tallies still show to everyone
	require.NotNil(t, views[1].Poll)
	assert.Equal(t, int64(4), views[1].Poll.Answers[0].VoteCount)
	assert.False(t, views[1].Poll.Answers[0].IsSelected)
}

func TestComposeBatchesLookups(t *testing.T) {
	likes := &fakeLikes{liked: map[uint]bool{}}
	bookmarks := &fakeBookmarks{bookmarked: map[uint]bool{}}
	votes := &fakeVotes{tallies: map[uint]map[int]int64{}}
	composer := NewComposer(likes, bookmarks, votes)

	_, err := composer.Compose(context.Background(), testPosts(), 7)
	require.NoError(t, err)

	// One batched query per concern, not one per post
	assert.Equal(t, 1, likes.batchQueries)
	assert.Equal(t, 1, bookmarks.batchQueries)
	assert.Equal(t, 1, votes.voteLookups)
	assert.Equal(t, 1, votes.tallyLookups)
}

func TestComposeEmptyBatch(t *testing.T) {
	votes := &fakeVotes{}
	composer := NewComposer(&fakeLikes{}, &fakeBookmarks{}, votes)

	views, err := composer.Compose(context.Background(), nil, 7)
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Zero(t, votes.tallyLookups)
}

func TestTallyPoll(t *testing.T) {
	votes := &fakeVotes{
		tallies:     map[uint]map[int]int64{10: {2: 5}},
		viewerVotes: map[uint]int{10: 2},
	}
	composer := NewComposer(&fakeLikes{}, &fakeBookmarks{}, votes)

	poll := &models.Poll{
		ID: 10,
		Answers: []models.PollAnswer{
			{AnswerIndex: 1, Text: "yes"},
			{AnswerIndex: 2, Text: "no"},
		},
	}

	view, err := composer.TallyPoll(context.Background(), poll, 7)
	require.NoError(t, err)
	require.Len(t, view.Answers, 2)
	assert.Equal(t, int64(0), view.Answers[0].VoteCount)
	assert.Equal(t, int64(5), view.Answers[1].VoteCount)
	assert.True(t, view.Answers[1].IsSelected)
}
