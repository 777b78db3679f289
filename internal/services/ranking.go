package services

import (
	"context"
	"log"

	"gorm.io/gorm"
)

const DefaultLeaderboardSize = 10

type LeaderboardEntry struct {
	FullName            string `json:"full_name"`
	ChallengesCompleted int    `json:"challenges_completed"`
	TotalAttempts       int    `json:"total_attempts"`
}

type RankingService struct {
	db *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{db: db}
}

// Leaderboard orders users by completions, breaking ties by who got their
// first correct submission in earlier. Users with nothing solved are left
// out. Rankings are advisory: a failed query degrades to an empty board.
func (s *RankingService) Leaderboard(ctx context.Context, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var entries []LeaderboardEntry
	err := s.db.WithContext(ctx).
		Table("users u").
		Select("u.full_name, s.challenges_completed, s.total_attempts").
		Joins("JOIN statistics s ON s.user_id = u.user_id").
		Joins("LEFT JOIN progress p ON p.user_id = u.user_id AND p.is_correct = ?", true).
		Where("s.challenges_completed > 0").
		Group("u.user_id, u.full_name, s.challenges_completed, s.total_attempts").
		Order("s.challenges_completed DESC, MIN(p.submission_date) ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		log.Printf("leaderboard query: %v", err)
		return []LeaderboardEntry{}
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	return entries
}
