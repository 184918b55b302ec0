package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatThread maps a user to their assistant conversation thread so a
// conversation survives page reloads. One open thread per user.
type ChatThread struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	ThreadID      string    `json:"thread_id" gorm:"uniqueIndex;not null"`
	Language      string    `json:"language" gorm:"default:'en'"`
	LastMessageAt time.Time `json:"last_message_at"`
	IsDeleted     bool      `gorm:"default:false"`
}
