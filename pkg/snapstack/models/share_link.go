package models

import "time"

// ShareLink maps a random hash to a user's shared content list.
// The unique index on UserID guarantees at most one active link per user,
// even under concurrent enable requests. No soft delete here: disabling
// must free the unique index slot so sharing can be re-enabled.
type ShareLink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Hash      string    `gorm:"uniqueIndex;not null" json:"hash"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
