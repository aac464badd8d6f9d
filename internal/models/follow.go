package models

import (
	"time"
)

// Follow is a directed edge: User (the follower) follows Author.
// AuthorID is nullable on purpose — when the followed account is deleted the
// edge survives with the author unset, while edges held as follower are
// removed with the user.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  *uint     `gorm:"index;uniqueIndex:idx_author_user" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_author_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
