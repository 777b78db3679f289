package testutil

import (
	"testing"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens an in-memory SQLite ledger with the full schema. The pool
// is pinned to one connection: every :memory: connection is its own database,
// and a single connection also serializes writes the way the production
// store's row locks do.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Attempt{},
		&models.Statistic{},
		&models.ActivityLog{},
		&models.AdminAccount{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
