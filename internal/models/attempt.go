package models

import "time"

// Attempt is one submitted flag. Rows are append-only and deduplicated by
// content: the same user resubmitting the exact same string for the same
// challenge does not create a second row.
type Attempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_attempt_content;index" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ChallengeID    int       `gorm:"not null;uniqueIndex:idx_attempt_content;index" json:"challenge_id"`
	FlagSubmitted  string    `gorm:"size:255;not null;uniqueIndex:idx_attempt_content" json:"flag_submitted"`
	IsCorrect      bool      `gorm:"not null;index" json:"is_correct"`
	SubmissionDate time.Time `gorm:"autoCreateTime;index" json:"submission_date"`
	AttemptNumber  int       `gorm:"not null;default:1" json:"attempt_number"`
}

func (Attempt) TableName() string {
	return "progress"
}
