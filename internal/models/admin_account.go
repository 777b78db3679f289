package models

import "time"

// AdminAccount authenticates the HTTP admin surface. Telegram-side admin
// commands are gated separately by the configured id allow-list.
type AdminAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
