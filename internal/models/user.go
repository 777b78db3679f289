package models

import "time"

// User identity is the externally assigned Telegram id, not a surrogate key.
type User struct {
	UserID           int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Username         string    `gorm:"size:255;index" json:"username"`
	FullName         string    `gorm:"size:255" json:"full_name"`
	RegistrationDate time.Time `gorm:"autoCreateTime" json:"registration_date"`
	IsActive         bool      `gorm:"not null;default:true;index" json:"is_active"`
}
