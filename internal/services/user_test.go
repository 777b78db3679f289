package services

import (
	"context"
	"testing"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	if err := users.Register(ctx, 42, "alice", "Alice"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := users.Register(ctx, 42, "alice2", "Alice Cooper"); err != nil {
		t.Fatalf("second register: %v", err)
	}

	var user models.User
	if err := db.Where("user_id = ?", 42).First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Username != "alice2" || user.FullName != "Alice Cooper" {
		t.Errorf("re-register did not refresh profile: %+v", user)
	}

	var stats int64
	if err := db.Model(&models.Statistic{}).Where("user_id = ?", 42).Count(&stats).Error; err != nil {
		t.Fatalf("count statistics: %v", err)
	}
	if stats != 1 {
		t.Errorf("statistics rows = %d, want 1", stats)
	}
}

func TestRegisterReactivatesUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	if err := users.Register(ctx, 7, "bob", "Bob"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := db.Model(&models.User{}).Where("user_id = ?", 7).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := users.Register(ctx, 7, "bob", "Bob"); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	var user models.User
	if err := db.Where("user_id = ?", 7).First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !user.IsActive {
		t.Error("re-register did not reactivate the user")
	}
}

func TestRegisterKeepsExistingStats(t *testing.T) {
	db := testutil.OpenTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	if err := users.Register(ctx, 9, "carol", "Carol"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := db.Model(&models.Statistic{}).Where("user_id = ?", 9).
		Update("total_attempts", 5).Error; err != nil {
		t.Fatalf("seed attempts: %v", err)
	}
	if err := users.Register(ctx, 9, "carol", "Carol"); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	var stat models.Statistic
	if err := db.Where("user_id = ?", 9).First(&stat).Error; err != nil {
		t.Fatalf("load statistics: %v", err)
	}
	if stat.TotalAttempts != 5 {
		t.Errorf("re-register reset statistics: %+v", stat)
	}
}

func TestGetProgress(t *testing.T) {
	svc, users, _ := newTestSubmission(t)
	userSvc := users
	ctx := context.Background()

	// Unknown user comes back with nil stats, not an error.
	progress, err := userSvc.GetProgress(ctx, 404)
	if err != nil {
		t.Fatalf("GetProgress(unknown): %v", err)
	}
	if progress.Stats != nil {
		t.Errorf("unknown user has stats: %+v", progress.Stats)
	}
	if len(progress.CompletedChallenges) != 0 {
		t.Errorf("unknown user has completions: %v", progress.CompletedChallenges)
	}

	mustRegister(t, userSvc, 42, "Alice")
	if got := svc.Submit(ctx, 42, 1, "FLAG{DRUGS}"); got != SubmitCorrect {
		t.Fatalf("solve 1: %q", got)
	}
	if got := svc.Submit(ctx, 42, 0, "FLAG{PFA}"); got != SubmitCorrect {
		t.Fatalf("solve 0: %q", got)
	}

	progress, err = userSvc.GetProgress(ctx, 42)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.Stats == nil || progress.Stats.ChallengesCompleted != 2 {
		t.Fatalf("stats = %+v, want 2 completed", progress.Stats)
	}
	if progress.User == nil || progress.User.FullName != "Alice" {
		t.Fatalf("user = %+v", progress.User)
	}
	want := []int{0, 1}
	if len(progress.CompletedChallenges) != len(want) {
		t.Fatalf("completed = %v, want %v", progress.CompletedChallenges, want)
	}
	for i, id := range want {
		if progress.CompletedChallenges[i] != id {
			t.Fatalf("completed = %v, want %v", progress.CompletedChallenges, want)
		}
	}
}
