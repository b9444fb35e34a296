package models

import "time"

// Title is a catalog work that users review. Its rating is never stored:
// it is the average of the attached review scores, computed on read.
type Title struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Year        *int      `json:"year"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	CategoryID  *string   `json:"-" gorm:"type:varchar(36)"`
	Category    *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre" gorm:"many2many:title_genres"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
