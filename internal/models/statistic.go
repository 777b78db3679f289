package models

import "time"

// Statistic is a materialized view over a user's attempts, one row per user.
// challenges_completed is recomputed from the attempt log on every correct
// submission rather than incremented, so the row can never drift from the
// source of truth.
type Statistic struct {
	UserID              int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User                User      `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ChallengesCompleted int       `gorm:"not null;default:0" json:"challenges_completed"`
	TotalAttempts       int       `gorm:"not null;default:0" json:"total_attempts"`
	CorrectAttempts     int       `gorm:"not null;default:0" json:"correct_attempts"`
	IncorrectAttempts   int       `gorm:"not null;default:0" json:"incorrect_attempts"`
	LastActivity        time.Time `gorm:"autoCreateTime" json:"last_activity"`
}

func (Statistic) TableName() string {
	return "statistics"
}
