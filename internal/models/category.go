package models

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"column:categories_id;primaryKey" json:"categories_id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	AdminID     uint      `gorm:"index" json:"admin_id"`
	TextAllow   bool      `gorm:"default:true" json:"text_allow"`
	PhotoAllow  bool      `gorm:"default:true" json:"photo_allow"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
