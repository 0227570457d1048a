// Package feed assembles loaded posts into viewer-specific view models.
// It is the single place that knows how to branch on an anonymous viewer;
// read endpoints hand it a batch and never re-derive interaction flags
// themselves.
package feed

import (
	"context"

	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
)

// AnonymousViewer is the viewer ID passed for unauthenticated reads.
// Anonymous viewers get zero-valued flags and no vote lookup.
const AnonymousViewer uint = 0

// Composer projects posts into view models. It performs no writes: its only
// queries are batched existence checks against the like/bookmark tables and
// one grouped vote aggregate for all polls in the batch, keeping lookups at
// O(N) for N posts regardless of answers per poll.
type Composer struct {
	likes     repositories.LikeRepository
	bookmarks repositories.BookmarkRepository
	votes     repositories.PollVoteRepository
}

// NewComposer creates a new Composer
func NewComposer(
	likes repositories.LikeRepository,
	bookmarks repositories.BookmarkRepository,
	votes repositories.PollVoteRepository,
) *Composer {
	return &Composer{likes: likes, bookmarks: bookmarks, votes: votes}
}

// Compose builds view models for a batch of posts whose direct relations
// (account, stats, photos, tags, poll with answers) are already loaded.
// Output order mirrors input order.
func (c *Composer) Compose(ctx context.Context, posts []models.Post, viewerID uint) ([]PostView, error) {
	views := make([]PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]uint, 0, len(posts))
	pollIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if p.Poll != nil {
			pollIDs = append(pollIDs, p.Poll.ID)
		}
	}

	tallies, err := c.votes.CountVotesByAnswer(ctx, pollIDs)
	if err != nil {
		return nil, err
	}

	likedMap := map[uint]bool{}
	bookmarkedMap := map[uint]bool{}
	viewerVotes := map[uint]int{}
	if viewerID != AnonymousViewer {
		if likedMap, err = c.likes.GetLikedPostIDs(ctx, viewerID, postIDs); err != nil {
			return nil, err
		}
		if bookmarkedMap, err = c.bookmarks.GetBookmarkedPostIDs(ctx, viewerID, postIDs); err != nil {
			return nil, err
		}
		if viewerVotes, err = c.votes.GetVotesForPolls(ctx, viewerID, pollIDs); err != nil {
			return nil, err
		}
	}

	for _, p := range posts {
		views = append(views, buildView(&p, likedMap[p.ID], bookmarkedMap[p.ID], tallies, viewerVotes))
	}
	return views, nil
}

// ComposeOne builds the view model for a single loaded post
func (c *Composer) ComposeOne(ctx context.Context, post *models.Post, viewerID uint) (*PostView, error) {
	views, err := c.Compose(ctx, []models.Post{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// TallyPoll computes the vote counts and viewer selection for one poll whose
// answers are already loaded.
func (c *Composer) TallyPoll(ctx context.Context, poll *models.Poll, viewerID uint) (*PollView, error) {
	tallies, err := c.votes.CountVotesByAnswer(ctx, []uint{poll.ID})
	if err != nil {
		return nil, err
	}
	viewerVotes := map[uint]int{}
	if viewerID != AnonymousViewer {
		if viewerVotes, err = c.votes.GetVotesForPolls(ctx, viewerID, []uint{poll.ID}); err != nil {
			return nil, err
		}
	}
	return buildPollView(poll, tallies, viewerVotes), nil
}

func buildView(post *models.Post, liked, bookmarked bool, tallies map[uint]map[int]int64, viewerVotes map[uint]int) PostView {
	view := PostView{
		ID:           post.ID,
		Content:      post.Content,
		Photos:       make([]string, 0, len(post.Photos)),
		Tags:         make([]string, 0, len(post.Tags)),
		IsLiked:      liked,
		IsBookmarked: bookmarked,
		CreatedAt:    post.CreatedAt,
	}
	if post.Account != nil {
		view.Author = post.Account.ToCompact()
	}
	if post.Stats != nil {
		view.Stats = StatsView{
			Comments:  post.Stats.Comments,
			Likes:     post.Stats.Likes,
			Bookmarks: post.Stats.Bookmarks,
		}
	}
	for _, photo := range post.Photos {
		view.Photos = append(view.Photos, photo.URL)
	}
	for _, tag := range post.Tags {
		view.Tags = append(view.Tags, tag.Name)
	}
	if post.Poll != nil {
		view.Poll = buildPollView(post.Poll, tallies, viewerVotes)
	}
	return view
}

func buildPollView(poll *models.Poll, tallies map[uint]map[int]int64, viewerVotes map[uint]int) *PollView {
	view := &PollView{
		ID:        poll.ID,
		PostID:    poll.PostID,
		AccountID: poll.AccountID,
		ExpiresAt: poll.ExpiresAt,
		Answers:   make([]AnswerView, 0, len(poll.Answers)),
	}
	counts := tallies[poll.ID]
	selected, hasVoted := viewerVotes[poll.ID]
	for _, answer := range poll.Answers {
		view.Answers = append(view.Answers, AnswerView{
			ID:          answer.ID,
			AnswerIndex: answer.AnswerIndex,
			Text:        answer.Text,
			VoteCount:   counts[answer.AnswerIndex],
			IsSelected:  hasVoted && selected == answer.AnswerIndex,
		})
	}
	return view
}
