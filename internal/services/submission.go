package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitResult is what a flag submission comes back as. The evaluator never
// surfaces storage errors to callers; they collapse into SubmitFailed.
type SubmitResult string

const (
	SubmitCorrect          SubmitResult = "correct"
	SubmitAlreadyCompleted SubmitResult = "already_completed"
	SubmitIncorrect        SubmitResult = "incorrect"
	SubmitLocked           SubmitResult = "locked"
	SubmitNotRegistered    SubmitResult = "not_registered"
	SubmitFailed           SubmitResult = "failed"
)

// commandTimeout bounds every ledger operation so a stuck connection fails
// the request instead of blocking it.
const commandTimeout = 30 * time.Second

type SubmissionService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewSubmissionService(db *gorm.DB, cat *catalog.Catalog) *SubmissionService {
	return &SubmissionService{db: db, catalog: cat, now: time.Now}
}

// Submit checks a flag for (user, challenge) and records the attempt.
//
// The attempt log is the source of truth: the statistics row is updated in
// the same transaction as the insert, and challenges_completed is recomputed
// from the log rather than incremented, so replayed or racing submissions can
// never double-count. Attempts are deduplicated by content — resubmitting the
// exact same string adds no row and moves no counter.
func (s *SubmissionService) Submit(ctx context.Context, userID int64, challengeID int, raw string) SubmitResult {
	ch, ok := s.catalog.Get(challengeID)
	if !ok {
		return SubmitFailed
	}
	if !s.catalog.IsUnlocked(challengeID, s.now()) {
		return SubmitLocked
	}

	flag := strings.TrimSpace(raw)
	isCorrect := ch.Matches(flag)

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	result := SubmitIncorrect
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registered int64
		if err := tx.Model(&models.Statistic{}).
			Where("user_id = ?", userID).
			Count(&registered).Error; err != nil {
			return err
		}
		if registered == 0 {
			result = SubmitNotRegistered
			return nil
		}

		// Idempotent short-circuit: a prior correct attempt means this
		// challenge is done, whatever the new text says.
		var solved int64
		if err := tx.Model(&models.Attempt{}).
			Where("user_id = ? AND challenge_id = ? AND is_correct = ?", userID, challengeID, true).
			Count(&solved).Error; err != nil {
			return err
		}
		if solved > 0 {
			result = SubmitAlreadyCompleted
			return nil
		}

		var prior int64
		if err := tx.Model(&models.Attempt{}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			Count(&prior).Error; err != nil {
			return err
		}

		attempt := models.Attempt{
			UserID:         userID,
			ChallengeID:    challengeID,
			FlagSubmitted:  flag, // raw text kept for the audit trail
			IsCorrect:      isCorrect,
			SubmissionDate: s.now(),
			AttemptNumber:  int(prior) + 1,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attempt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Same text seen before. Strict dedup: no counter moves.
			if isCorrect {
				result = SubmitAlreadyCompleted
			}
			return nil
		}

		updates := map[string]interface{}{
			"total_attempts": gorm.Expr("total_attempts + 1"),
			"last_activity":  s.now(),
		}
		if isCorrect {
			updates["correct_attempts"] = gorm.Expr("correct_attempts + 1")
			updates["challenges_completed"] = gorm.Expr(
				"(SELECT COUNT(DISTINCT challenge_id) FROM progress WHERE user_id = ? AND is_correct = ?)",
				userID, true,
			)
		} else {
			updates["incorrect_attempts"] = gorm.Expr("incorrect_attempts + 1")
		}
		if err := tx.Model(&models.Statistic{}).
			Where("user_id = ?", userID).
			Updates(updates).Error; err != nil {
			return err
		}

		if isCorrect {
			result = SubmitCorrect
		}
		return nil
	})
	if err != nil {
		log.Printf("submit: user %d challenge %d: %v", userID, challengeID, err)
		return SubmitFailed
	}

	return result
}
