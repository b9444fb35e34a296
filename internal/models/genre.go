package models

import "time"

// Genre is a taxonomy entry attached to titles many-to-many.
type Genre struct {
	ID        string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(30);not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(30);not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
