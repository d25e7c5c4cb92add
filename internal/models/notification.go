package models

import "time"

// Notification represents a user notification (PostgreSQL). Written by the
// fan-out path; the recipient reads them through the notifications endpoint.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ActorID     string    `json:"actor_id" gorm:"size:64;index"`
	RecipientID string    `json:"recipient_id" gorm:"size:64;index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
