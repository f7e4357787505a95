package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a tag that can be applied to content.
// No endpoint creates tags; the relation exists for content that references them.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Content []Content `gorm:"many2many:content_tags;" json:"content,omitempty"`
}
