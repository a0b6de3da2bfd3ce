package models

import (
	"time"
)

// Subscription links a user to a category they follow.
type Subscription struct {
	ID         uint      `gorm:"column:subscription_id;primaryKey" json:"subscription_id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_category" json:"user_id"`
	CategoryID uint      `gorm:"not null;index;uniqueIndex:idx_user_category" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}
