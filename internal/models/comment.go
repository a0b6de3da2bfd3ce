package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	Text      string    `gorm:"type:text;not null" json:"text"` // plain text, or a JSON removal marker after soft delete
	ParentID  *uint     `gorm:"index" json:"parent_id"`         // nullable, top-level comments have no parent
	ThreadID  uint      `gorm:"not null;index" json:"thread_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Karma     int       `gorm:"default:0" json:"karma"` // cached, maintained by the vote ledger only
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comment"
}
