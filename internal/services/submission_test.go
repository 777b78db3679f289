package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/testutil"

	"gorm.io/gorm"
)

var testClock = time.Date(2024, 9, 16, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Challenge{
		{ID: 0, Title: "Warm-up", Flags: []string{"FLAG{PFA}"}, UnlockAt: testClock.Add(-48 * time.Hour)},
		{ID: 1, Title: "Variants", Flags: []string{"FLAG{DRUGS}", "FLAG{DRUG_TRAFFICKING}"}, UnlockAt: testClock.Add(-24 * time.Hour)},
		{ID: 2, Title: "Future", Flags: []string{"FLAG{LATER}"}, UnlockAt: testClock.Add(24 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func newTestSubmission(t *testing.T) (*SubmissionService, *UserService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	svc := NewSubmissionService(db, testCatalog(t))
	svc.now = func() time.Time { return testClock }
	return svc, NewUserService(db), db
}

func mustRegister(t *testing.T, users *UserService, userID int64, name string) {
	t.Helper()
	if err := users.Register(context.Background(), userID, name, name); err != nil {
		t.Fatalf("Register(%d): %v", userID, err)
	}
}

func readStats(t *testing.T, db *gorm.DB, userID int64) models.Statistic {
	t.Helper()
	var stat models.Statistic
	if err := db.Where("user_id = ?", userID).First(&stat).Error; err != nil {
		t.Fatalf("load statistics for %d: %v", userID, err)
	}
	return stat
}

func countAttempts(t *testing.T, db *gorm.DB, userID int64, challengeID int) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.Attempt{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	return n
}

func TestSubmitFlow(t *testing.T) {
	svc, users, db := newTestSubmission(t)
	ctx := context.Background()
	mustRegister(t, users, 42, "Alice")

	if got := svc.Submit(ctx, 42, 0, "FLAG{WRONG}"); got != SubmitIncorrect {
		t.Fatalf("wrong flag: got %q, want %q", got, SubmitIncorrect)
	}
	stat := readStats(t, db, 42)
	if stat.TotalAttempts != 1 || stat.IncorrectAttempts != 1 || stat.ChallengesCompleted != 0 {
		t.Fatalf("after wrong flag: %+v", stat)
	}

	if got := svc.Submit(ctx, 42, 0, "FLAG{PFA}"); got != SubmitCorrect {
		t.Fatalf("correct flag: got %q, want %q", got, SubmitCorrect)
	}
	stat = readStats(t, db, 42)
	if stat.ChallengesCompleted != 1 || stat.CorrectAttempts != 1 || stat.TotalAttempts != 2 {
		t.Fatalf("after correct flag: %+v", stat)
	}

	// Resolving a solved challenge is answered, not recorded.
	if got := svc.Submit(ctx, 42, 0, "FLAG{PFA}"); got != SubmitAlreadyCompleted {
		t.Fatalf("resubmit: got %q, want %q", got, SubmitAlreadyCompleted)
	}
	stat = readStats(t, db, 42)
	if stat.ChallengesCompleted != 1 || stat.TotalAttempts != 2 {
		t.Fatalf("after resubmit: %+v", stat)
	}
	if n := countAttempts(t, db, 42, 0); n != 2 {
		t.Fatalf("attempt rows = %d, want 2", n)
	}
}

func TestSubmitNormalization(t *testing.T) {
	svc, users, _ := newTestSubmission(t)
	ctx := context.Background()
	mustRegister(t, users, 1, "Bob")

	if got := svc.Submit(ctx, 1, 0, "  flag{pfa}  "); got != SubmitCorrect {
		t.Fatalf("lowercase padded flag: got %q, want %q", got, SubmitCorrect)
	}
}

func TestSubmitAcceptsAnyVariant(t *testing.T) {
	svc, users, db := newTestSubmission(t)
	ctx := context.Background()
	mustRegister(t, users, 1, "Bob")
	mustRegister(t, users, 2, "Carol")

	if got := svc.Submit(ctx, 1, 1, "FLAG{DRUGS}"); got != SubmitCorrect {
		t.Fatalf("first variant: got %q", got)
	}
	if got := svc.Submit(ctx, 2, 1, "FLAG{DRUG_TRAFFICKING}"); got != SubmitCorrect {
		t.Fatalf("second variant: got %q", got)
	}

	// The other variant after a solve does not add a row.
	if got := svc.Submit(ctx, 1, 1, "FLAG{DRUG_TRAFFICKING}"); got != SubmitAlreadyCompleted {
		t.Fatalf("variant after solve: got %q", got)
	}
	if n := countAttempts(t, db, 1, 1); n != 1 {
		t.Fatalf("attempt rows = %d, want 1", n)
	}
}

func TestSubmitDuplicateWrongFlagNotCounted(t *testing.T) {
	svc, users, db := newTestSubmission(t)
	ctx := context.Background()
	mustRegister(t, users, 7, "Dave")

	if got := svc.Submit(ctx, 7, 0, "FLAG{NOPE}"); got != SubmitIncorrect {
		t.Fatalf("first wrong: got %q", got)
	}
	if got := svc.Submit(ctx, 7, 0, "FLAG{NOPE}"); got != SubmitIncorrect {
		t.Fatalf("repeated wrong: got %q", got)
	}

	if n := countAttempts(t, db, 7, 0); n != 1 {
		t.Fatalf("attempt rows = %d, want 1", n)
	}
	stat := readStats(t, db, 7)
	if stat.TotalAttempts != 1 || stat.IncorrectAttempts != 1 {
		t.Fatalf("duplicate wrong moved counters: %+v", stat)
	}
}

func TestSubmitLockedChallenge(t *testing.T) {
	svc, users, db := newTestSubmission(t)
	ctx := context.Background()
	mustRegister(t, users, 1, "Bob")

	if got := svc.Submit(ctx, 1, 2, "FLAG{LATER}"); got != SubmitLocked {
		t.Fatalf("locked challenge: got %q, want %q", got, SubmitLocked)
	}
	if n := countAttempts(t, db, 1, 2); n != 0 {
		t.Fatalf("locked submission left %d rows", n)
	}
}

func TestSubmitUnregisteredUser(t *testing.T) {
	svc, _, db := newTestSubmission(t)

	if got := svc.Submit(context.Background(), 999, 0, "FLAG{PFA}"); got != SubmitNotRegistered {
		t.Fatalf("unregistered user: got %q, want %q", got, SubmitNotRegistered)
	}
	if n := countAttempts(t, db, 999, 0); n != 0 {
		t.Fatalf("unregistered submission left %d rows", n)
	}
}

func TestSubmitUnknownChallenge(t *testing.T) {
	svc, users, _ := newTestSubmission(t)
	mustRegister(t, users, 1, "Bob")

	if got := svc.Submit(context.Background(), 1, 99, "FLAG{PFA}"); got != SubmitFailed {
		t.Fatalf("unknown challenge: got %q, want %q", got, SubmitFailed)
	}
}

func TestSubmitConcurrentSameFlag(t *testing.T) {
	svc, users, db := newTestSubmission(t)
	mustRegister(t, users, 5, "Eve")

	var wg sync.WaitGroup
	results := make([]SubmitResult, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Submit(context.Background(), 5, 0, "FLAG{PFA}")
		}(i)
	}
	wg.Wait()

	correct := 0
	for _, r := range results {
		switch r {
		case SubmitCorrect:
			correct++
		case SubmitAlreadyCompleted:
		default:
			t.Fatalf("unexpected result %q", r)
		}
	}
	if correct != 1 {
		t.Fatalf("got %d correct results, want exactly 1 (results: %v)", correct, results)
	}

	if n := countAttempts(t, db, 5, 0); n != 1 {
		t.Fatalf("attempt rows = %d, want 1", n)
	}
	stat := readStats(t, db, 5)
	if stat.ChallengesCompleted != 1 || stat.CorrectAttempts != 1 {
		t.Fatalf("race double-counted: %+v", stat)
	}
}
