package models

import "time"

// Review is a scored write-up of a title. Each account may review a given
// title at most once, enforced by the composite unique index.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TitleID   string    `json:"-" gorm:"uniqueIndex:idx_reviews_author_title;type:varchar(36);not null"`
	Title     *Title    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  string    `json:"-" gorm:"uniqueIndex:idx_reviews_author_title;type:varchar(36);not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}
