package models

import "time"

// Post represents a social post authored by an account
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	AccountID uint      `json:"account_id" gorm:"index;not null"`
	Account   *Account  `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	CreatedAt time.Time `json:"created_at"`

	// Owned relations, loaded eagerly before view assembly
	Stats  *PostStats `json:"stats,omitempty" gorm:"foreignKey:PostID"`
	Photos []Photo    `json:"photos,omitempty" gorm:"foreignKey:PostID"`
	Tags   []Tag      `json:"tags,omitempty" gorm:"many2many:post_tags"`
	Poll   *Poll      `json:"poll,omitempty" gorm:"foreignKey:PostID"`
}

// PostStats holds the denormalized counters for a post.
// Counters are mutated only through relative arithmetic updates inside the
// same transaction as the detail-row change they mirror.
type PostStats struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	PostID    uint  `json:"post_id" gorm:"uniqueIndex;not null"`
	Comments  int64 `json:"comments" gorm:"not null;default:0"`
	Likes     int64 `json:"likes" gorm:"not null;default:0"`
	Bookmarks int64 `json:"bookmarks" gorm:"not null;default:0"`
}

// Photo represents a photo attached to a post
type Photo struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	URL    string `json:"url" gorm:"not null"`
	PostID uint   `json:"post_id" gorm:"index;not null"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string   `json:"content" validate:"required,min=1,max=1000"`
	Photos  []string `json:"photos,omitempty" validate:"omitempty,dive,url"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content string   `json:"content" validate:"required,min=1,max=1000"`
	Photos  []string `json:"photos,omitempty" validate:"omitempty,dive,url"`
}
