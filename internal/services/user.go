package services

import (
	"context"
	"errors"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register upserts the user and seeds the statistics row in one transaction.
// Re-registering refreshes username and full name and reactivates the
// account; the statistics row is never reset.
func (s *UserService) Register(ctx context.Context, userID int64, username, fullName string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{
			UserID:           userID,
			Username:         username,
			FullName:         fullName,
			RegistrationDate: time.Now(),
			IsActive:         true,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"username":  username,
				"full_name": fullName,
				"is_active": true,
			}),
		}).Create(&user).Error
		if err != nil {
			return err
		}

		stat := models.Statistic{UserID: userID, LastActivity: time.Now()}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&stat).Error
	})
}

type UserProgress struct {
	User                *models.User      `json:"user,omitempty"`
	Stats               *models.Statistic `json:"stats,omitempty"`
	CompletedChallenges []int             `json:"completed_challenges"`
}

// GetProgress returns the cached statistics plus the ordered set of distinct
// completed challenge ids. Stats is nil for an unregistered user.
func (s *UserService) GetProgress(ctx context.Context, userID int64) (*UserProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	db := s.db.WithContext(ctx)

	progress := &UserProgress{CompletedChallenges: []int{}}

	var stat models.Statistic
	err := db.Where("user_id = ?", userID).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return progress, nil
	}
	if err != nil {
		return nil, err
	}
	progress.Stats = &stat

	var user models.User
	if err := db.Where("user_id = ?", userID).First(&user).Error; err == nil {
		progress.User = &user
	}

	var completed []int
	err = db.Model(&models.Attempt{}).
		Distinct("challenge_id").
		Where("user_id = ? AND is_correct = ?", userID, true).
		Order("challenge_id ASC").
		Pluck("challenge_id", &completed).Error
	if err != nil {
		return nil, err
	}
	if len(completed) > 0 {
		progress.CompletedChallenges = completed
	}

	return progress, nil
}
