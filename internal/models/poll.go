package models

import "time"

// Poll is an optional 1:1 attachment of a post. Expiration is informational;
// votes are not rejected for arriving after it.
type Poll struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex;not null"`
	AccountID uint      `json:"account_id" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at"`

	Answers []PollAnswer `json:"answers,omitempty" gorm:"foreignKey:PollID"`
}

// PollAnswer is one choice of a poll, identified by a 1-based index unique
// within the poll.
type PollAnswer struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	PollID      uint   `json:"poll_id" gorm:"not null;uniqueIndex:idx_answer_poll_index"`
	Text        string `json:"text" gorm:"not null"`
	AnswerIndex int    `json:"answer_index" gorm:"not null;uniqueIndex:idx_answer_poll_index"`
}

// PollVote records an account's single vote on a poll.
// The combination of PollID and AccountID must be unique.
type PollVote struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	PollID      uint `json:"poll_id" gorm:"not null;uniqueIndex:idx_vote_poll_account"`
	AccountID   uint `json:"account_id" gorm:"not null;uniqueIndex:idx_vote_poll_account"`
	AnswerIndex int  `json:"answer_index" gorm:"not null"`
}

// PollAnswerRequest is one answer choice in a poll creation request
type PollAnswerRequest struct {
	Text string `json:"text" validate:"required,min=1,max=100"`
}

// CreatePollRequest defines the poll part of a post-with-poll creation request.
// The duration fields are added together to compute the expiration time.
type CreatePollRequest struct {
	Content string              `json:"content" validate:"required,min=1,max=1000"`
	Answers []PollAnswerRequest `json:"answers" validate:"required,min=2,max=4,dive"`
	Days    int                 `json:"days" validate:"min=0,max=7"`
	Hours   int                 `json:"hours" validate:"min=0,max=23"`
	Minutes int                 `json:"minutes" validate:"min=0,max=59"`
}

// VotePollRequest defines the request body for voting on a poll
type VotePollRequest struct {
	AnswerIndex int `json:"answer_index" validate:"required,min=1"`
}
