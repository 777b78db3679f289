package services

import (
	"context"
	"log"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"

	"gorm.io/gorm"
)

type ChallengeCompletions struct {
	ChallengeID int `json:"challenge_id"`
	Completions int `json:"completions"`
}

type AdminStats struct {
	TotalUsers     int                    `json:"total_users"`
	ActiveUsers24h int                    `json:"active_users_24h"`
	PerChallenge   []ChallengeCompletions `json:"per_challenge"`
}

type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

// AdminStats aggregates event-wide numbers for the admin views. Each query
// failure degrades to a zero value rather than failing the whole report.
func (s *StatsService) AdminStats(ctx context.Context) AdminStats {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	db := s.db.WithContext(ctx)

	var stats AdminStats
	stats.PerChallenge = []ChallengeCompletions{}

	var total int64
	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		log.Printf("admin stats: total users: %v", err)
	}
	stats.TotalUsers = int(total)

	cutoff := s.now().Add(-24 * time.Hour)
	var active int64
	err := db.Model(&models.Attempt{}).
		Distinct("user_id").
		Where("submission_date > ?", cutoff).
		Count(&active).Error
	if err != nil {
		log.Printf("admin stats: active users: %v", err)
	}
	stats.ActiveUsers24h = int(active)

	err = db.Model(&models.Attempt{}).
		Select("challenge_id, COUNT(DISTINCT user_id) AS completions").
		Where("is_correct = ?", true).
		Group("challenge_id").
		Order("challenge_id ASC").
		Scan(&stats.PerChallenge).Error
	if err != nil {
		log.Printf("admin stats: per challenge: %v", err)
		stats.PerChallenge = []ChallengeCompletions{}
	}

	return stats
}
