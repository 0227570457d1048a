package models

import "time"

// Like represents a like on a post.
// The combination of AccountID and PostID must be unique.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"not null;uniqueIndex:idx_like_account_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_like_account_post"`
	CreatedAt time.Time `json:"created_at"`
}
