package services

import (
	"context"
	"testing"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/testutil"
)

func TestAdminStats(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewStatsService(db)
	now := time.Date(2024, 9, 16, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seedSolver(t, db, 1, "Fresh", 2, now.Add(-time.Hour))
	seedSolver(t, db, 2, "Stale", 1, now.Add(-48*time.Hour))
	seedSolver(t, db, 3, "Idle", 0, now)

	// Deactivated users drop out of the headline count.
	inactive := models.User{UserID: 4, Username: "gone", FullName: "Gone", IsActive: false}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("seed inactive user: %v", err)
	}

	stats := svc.AdminStats(context.Background())

	if stats.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", stats.TotalUsers)
	}
	if stats.ActiveUsers24h != 1 {
		t.Errorf("ActiveUsers24h = %d, want 1", stats.ActiveUsers24h)
	}

	// Challenge 0 solved by users 1 and 2, challenge 1 only by user 1.
	if len(stats.PerChallenge) != 2 {
		t.Fatalf("PerChallenge = %+v, want 2 rows", stats.PerChallenge)
	}
	if stats.PerChallenge[0].ChallengeID != 0 || stats.PerChallenge[0].Completions != 2 {
		t.Errorf("challenge 0 row = %+v", stats.PerChallenge[0])
	}
	if stats.PerChallenge[1].ChallengeID != 1 || stats.PerChallenge[1].Completions != 1 {
		t.Errorf("challenge 1 row = %+v", stats.PerChallenge[1])
	}
}

func TestAdminStatsEmptyDatabase(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewStatsService(db)

	stats := svc.AdminStats(context.Background())
	if stats.TotalUsers != 0 || stats.ActiveUsers24h != 0 {
		t.Errorf("empty database produced %+v", stats)
	}
	if stats.PerChallenge == nil || len(stats.PerChallenge) != 0 {
		t.Errorf("PerChallenge = %v, want empty slice", stats.PerChallenge)
	}
}
