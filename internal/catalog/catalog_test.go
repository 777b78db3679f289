package catalog

import (
	"testing"
	"time"
)

func TestNewRejectsGappyIDs(t *testing.T) {
	_, err := New([]Challenge{
		{ID: 0, Flags: []string{"FLAG{A}"}},
		{ID: 2, Flags: []string{"FLAG{B}"}},
	})
	if err == nil {
		t.Fatal("expected error for non-contiguous ids")
	}
}

func TestNewRejectsEmptyFlagSet(t *testing.T) {
	_, err := New([]Challenge{{ID: 0}})
	if err == nil {
		t.Fatal("expected error for empty flag set")
	}
}

func TestIsUnlocked(t *testing.T) {
	unlock := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
	cat, err := New([]Challenge{{ID: 0, Flags: []string{"FLAG{A}"}, UnlockAt: unlock}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cat.IsUnlocked(0, unlock.Add(-time.Second)) {
		t.Error("unlocked one second early")
	}
	if !cat.IsUnlocked(0, unlock) {
		t.Error("locked at the exact unlock instant")
	}
	if !cat.IsUnlocked(0, unlock.Add(time.Hour)) {
		t.Error("locked after the unlock instant")
	}
	if cat.IsUnlocked(99, unlock.Add(time.Hour)) {
		t.Error("unknown challenge reported unlocked")
	}
}

func TestMatches(t *testing.T) {
	ch := Challenge{ID: 0, Flags: []string{"FLAG{PFA}", "FLAG{POLICE}"}}

	cases := []struct {
		submission string
		want       bool
	}{
		{"FLAG{PFA}", true},
		{"flag{pfa}", true},
		{"  FLAG{PFA}  ", true},
		{"FLAG{POLICE}", true},
		{"flag{police}", true},
		{"FLAG{PF}", false},
		{"FLAG{PFAX}", false},
		{"the answer is FLAG{PFA}", false}, // whole token only, no substring match
		{"", false},
	}
	for _, tc := range cases {
		if got := ch.Matches(tc.submission); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.submission, got, tc.want)
		}
	}
}

func TestDefaultUnlockSchedule(t *testing.T) {
	start := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
	cat := Default(start, 24*time.Hour)

	if cat.Len() < 2 {
		t.Fatalf("default catalog too small: %d", cat.Len())
	}

	for i, ch := range cat.All() {
		if ch.ID != i {
			t.Errorf("challenge at position %d has id %d", i, ch.ID)
		}
		if len(ch.Flags) == 0 {
			t.Errorf("challenge %d has no flags", ch.ID)
		}
	}

	warmup, _ := cat.Get(0)
	if !warmup.UnlockAt.Equal(start.Add(-24 * time.Hour)) {
		t.Errorf("warm-up unlocks at %v, want one interval before start", warmup.UnlockAt)
	}

	first, _ := cat.Get(1)
	if !first.UnlockAt.Equal(start) {
		t.Errorf("challenge 1 unlocks at %v, want event start", first.UnlockAt)
	}

	second, _ := cat.Get(2)
	if !second.UnlockAt.Equal(start.Add(24 * time.Hour)) {
		t.Errorf("challenge 2 unlocks at %v, want start + 1 interval", second.UnlockAt)
	}
}
