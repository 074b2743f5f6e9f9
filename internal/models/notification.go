package models

import "time"

// Notification is a message addressed to a single user. The row is the
// durable record; the live websocket push of the same payload is best-effort.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
