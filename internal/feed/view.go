package feed

import (
	"time"

	"github.com/unihelp-app/backend/internal/models"
)

// PostView is the merged, viewer-specific projection of a post ready for
// presentation: post fields, stats snapshot, photo URLs, tag names, poll
// view and the viewer's like/bookmark flags.
type PostView struct {
	ID           uint                  `json:"id"`
	Content      string                `json:"content"`
	Author       models.AccountCompact `json:"author"`
	Stats        StatsView             `json:"stats"`
	Photos       []string              `json:"photos"`
	Tags         []string              `json:"tags"`
	Poll         *PollView             `json:"poll,omitempty"`
	IsLiked      bool                  `json:"is_liked"`
	IsBookmarked bool                  `json:"is_bookmarked"`
	CreatedAt    time.Time             `json:"created_at"`
}

// StatsView is a snapshot of a post's denormalized counters
type StatsView struct {
	Comments  int64 `json:"comments"`
	Likes     int64 `json:"likes"`
	Bookmarks int64 `json:"bookmarks"`
}

// PollView carries a poll's answers with their vote counts and, for a
// signed-in viewer, which answer they selected.
type PollView struct {
	ID        uint         `json:"id"`
	PostID    uint         `json:"post_id"`
	AccountID uint         `json:"account_id"`
	ExpiresAt time.Time    `json:"expires_at"`
	Answers   []AnswerView `json:"answers"`
}

// AnswerView is one poll answer with its aggregated vote count
type AnswerView struct {
	ID          uint   `json:"id"`
	AnswerIndex int    `json:"answer_index"`
	Text        string `json:"text"`
	VoteCount   int64  `json:"vote_count"`
	IsSelected  bool   `json:"is_selected"`
}
