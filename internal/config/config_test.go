package config

import "testing"

func TestParseIDs(t *testing.T) {
	ids := parseIDs("123, 456,,bad, 789")
	want := []int64{123, 456, 789}
	if len(ids) != len(want) {
		t.Fatalf("parseIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("parseIDs = %v, want %v", ids, want)
		}
	}

	if got := parseIDs(""); got != nil {
		t.Errorf("parseIDs(\"\") = %v, want nil", got)
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{100, 200}}
	if !cfg.IsAdmin(100) {
		t.Error("listed id rejected")
	}
	if cfg.IsAdmin(300) {
		t.Error("unlisted id accepted")
	}
}
