package services

import (
	"context"
	"log"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"

	"gorm.io/gorm"
)

// ActivityRecorder writes the audit trail of user actions. It lives outside
// the ledger logic: callers wrap their operations with it instead of
// threading tracking through business code.
type ActivityRecorder struct {
	db *gorm.DB
}

func NewActivityRecorder(db *gorm.DB) *ActivityRecorder {
	return &ActivityRecorder{db: db}
}

// Record is best-effort. A lost log line must never fail the operation it
// describes.
func (r *ActivityRecorder) Record(ctx context.Context, userID int64, action, details string) {
	entry := models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("activity log: %s for user %d: %v", action, userID, err)
	}
}
