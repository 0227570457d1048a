package models

// Tag is a shared label attached to posts. Names are stored lower-cased and
// are unique; tags are referenced by posts, never owned by them.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}
