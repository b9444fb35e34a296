package models

import "time"

// Comment is a reply attached to a review. Comments are removed together
// with their review (cascade).
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ReviewID  string    `json:"-" gorm:"type:varchar(36);not null"`
	Review    *Review   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  string    `json:"-" gorm:"type:varchar(36);not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}
