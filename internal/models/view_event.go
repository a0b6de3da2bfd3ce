package models

import (
	"time"
)

// ViewEvent is the dedup log behind the view counter. It is consulted only
// to decide whether a hit looks like a repeat visit; the cached
// thread.view_count is incremented independently of it.
type ViewEvent struct {
	ID        uint      `gorm:"column:view_id;primaryKey" json:"view_id"`
	ThreadID  uint      `gorm:"not null;index" json:"thread_id"`
	ViewerID  *uint     `gorm:"index" json:"viewer_id"`
	SessionID *string   `gorm:"size:128;index" json:"session_id"`
	IPHash    *string   `gorm:"column:ip_hash;size:64;index" json:"ip_hash"`
	ViewedAt  time.Time `gorm:"autoCreateTime;index" json:"viewed_at"`
}

func (ViewEvent) TableName() string {
	return "view_events"
}
