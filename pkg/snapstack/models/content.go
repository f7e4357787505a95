package models

import (
	"time"

	"gorm.io/gorm"
)

// Content represents a saved bookmark owned by a user
type Content struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Title     string         `gorm:"not null" json:"title"`
	Link      string         `gorm:"not null" json:"link"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags []Tag `gorm:"many2many:content_tags;" json:"tags,omitempty"`
}
