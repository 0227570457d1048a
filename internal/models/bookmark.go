package models

import "time"

// Bookmark represents a bookmarked post.
// The combination of AccountID and PostID must be unique.
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"not null;uniqueIndex:idx_bookmark_account_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_bookmark_account_post"`
	CreatedAt time.Time `json:"created_at"`
}
