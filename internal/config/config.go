package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBMinConns int
	DBMaxConns int

	StartDate           time.Time
	EndDate             time.Time
	Location            *time.Location
	UnlockIntervalHours int

	AdminIDs []int64

	BotToken       string
	WebhookBaseURL string
	BotAPIKey      string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	ServerPort string
}

func Load() *Config {
	loc, err := time.LoadLocation(getEnv("TIMEZONE", "America/Argentina/Buenos_Aires"))
	if err != nil {
		log.Printf("invalid TIMEZONE, falling back to UTC: %v", err)
		loc = time.UTC
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ctf"),
		DBMinConns: getEnvInt("DB_MIN_CONNECTIONS", 1),
		DBMaxConns: getEnvInt("DB_MAX_CONNECTIONS", 3),

		StartDate:           parseDate(getEnv("START_DATE", "2024-09-15"), loc),
		EndDate:             parseDate(getEnv("END_DATE", "2024-09-19"), loc),
		Location:            loc,
		UnlockIntervalHours: getEnvInt("UNLOCK_INTERVAL_HOURS", 24),

		AdminIDs: parseIDs(getEnv("ADMIN_IDS", "")),

		BotToken:       getEnv("BOT_TOKEN", ""),
		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
		BotAPIKey:      getEnv("BOT_API_KEY", "bot-api-key-change-me"),

		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		ServerPort: getEnv("SERVER_PORT", "8080"),
	}
}

// IsAdmin reports whether a Telegram user id is on the allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, val, fallback)
		return fallback
	}
	return n
}

func parseDate(val string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02", val, loc)
	if err != nil {
		log.Printf("invalid date %q, using today: %v", val, err)
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}
	return t
}

func parseIDs(val string) []int64 {
	var ids []int64
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("ignoring invalid admin id %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
