package models

import (
	"time"
)

type Thread struct {
	ID         uint      `gorm:"column:thread_id;primaryKey" json:"thread_id"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	BodyText   string    `gorm:"type:text" json:"body_text"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Karma      int       `gorm:"default:0" json:"karma"`      // cached, maintained by the vote ledger only
	ViewCount  int       `gorm:"default:0" json:"view_count"` // cached raw hit counter
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`

	// Filled by queries, not stored
	CommentCount int           `gorm:"-" json:"comment_count"`
	Media        []ThreadMedia `gorm:"foreignKey:ThreadID" json:"media"`
}

func (Thread) TableName() string {
	return "thread"
}

// ThreadMedia is an image (or other media) attached to a thread. The blob
// itself lives in an external store; only the URL metadata is kept here.
type ThreadMedia struct {
	ID        uint   `gorm:"column:media_id;primaryKey" json:"media_id"`
	ThreadID  uint   `gorm:"not null;index" json:"thread_id"`
	MediaType string `gorm:"size:20;default:'image'" json:"media_type"`
	URL       string `gorm:"not null" json:"url"`
	PublicID  string `json:"public_id"`
}

func (ThreadMedia) TableName() string {
	return "thread_media"
}
