package models

import (
	"time"
)

// ThreadReaction is a single user's vote on a thread, the row-level source
// of truth behind the thread's cached karma. One row per (user, thread).
type ThreadReaction struct {
	ID        uint      `gorm:"column:thread_reaction_id;primaryKey" json:"thread_reaction_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_thread" json:"user_id"`
	ThreadID  uint      `gorm:"not null;index;uniqueIndex:idx_user_thread" json:"thread_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

func (ThreadReaction) TableName() string {
	return "thread_reaction"
}

// CommentReaction is a single user's vote on a comment. Legacy deployments
// carry this table without the value column (presence means +1); see
// services.DetectCapabilities.
type CommentReaction struct {
	ID        uint      `gorm:"column:comment_reaction_id;primaryKey" json:"comment_reaction_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_user_comment" json:"comment_id"`
	Value     int       `gorm:"not null;default:1" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

func (CommentReaction) TableName() string {
	return "comment_reaction"
}
