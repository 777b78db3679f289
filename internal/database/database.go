package database

import (
	"fmt"
	"log"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/config"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMinConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("database connected (pool %d-%d)", cfg.DBMinConns, cfg.DBMaxConns)
	return db
}

// Migrate creates the schema. Everything here is idempotent: it runs on every
// process start.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Attempt{},
		&models.Statistic{},
		&models.ActivityLog{},
		&models.AdminAccount{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Secondary indexes for the hot paths: per-user progress lookups,
	// per-challenge completion counts and the 24h activity window.
	db.Exec("CREATE INDEX IF NOT EXISTS idx_progress_user_correct ON progress(user_id, is_correct)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_progress_challenge_correct ON progress(challenge_id, is_correct)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_progress_date ON progress(submission_date)")

	log.Println("database migrated")
}
