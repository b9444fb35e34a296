package models

import "time"

// Category is a top-level taxonomy entry (e.g. "Movies", "Books").
// Write paths address categories by slug, never by ID.
type Category struct {
	ID        string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(30);not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(30);not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
