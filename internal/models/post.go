package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint  `gorm:"index" json:"group_id"` // Nullable, cleared when the group goes away
	Group    *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image    string `json:"image"` // Relative media path, e.g. "posts/ab12cd34.png"
	// Set once on insert; edits never touch it
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Not a DB column, filled in by list queries
	CommentCount int `gorm:"-" json:"comment_count"`
}
