package services

import (
	"context"
	"testing"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/testutil"
)

func TestAdminLoginFlow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	auth.EnsureBootstrapAdmin(ctx, "admin", "hunter2")
	// Repeated bootstrap must not fail or duplicate the account.
	auth.EnsureBootstrapAdmin(ctx, "admin", "hunter2")

	token, err := auth.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login returned empty token")
	}

	adminID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if adminID == 0 {
		t.Error("validated token carries no admin id")
	}

	if _, err := auth.Login(ctx, "admin", "wrong"); err == nil {
		t.Error("login with wrong password succeeded")
	}
	if _, err := auth.Login(ctx, "ghost", "hunter2"); err == nil {
		t.Error("login with unknown account succeeded")
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	db := testutil.OpenTestDB(t)
	auth := NewAuthService(db, "secret-a")
	other := NewAuthService(db, "secret-b")

	token, err := auth.GenerateToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret validated")
	}
	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}
}
