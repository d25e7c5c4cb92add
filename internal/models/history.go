package models

import "time"

// History is an audit line appended per user action (PostgreSQL).
type History struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:64;index"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
