package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret     string
	JWTTTLMinutes int

	// ActivityWindow bounds how many recent activity events the task
	// evaluator loads per user.
	ActivityWindow  int
	LeaderboardSize int

	RateLimitClaim time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
	}

	var err error
	cfg.JWTTTLMinutes, err = parseInt(getEnv("JWT_TTL_MINUTES", "1440"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %w", err)
	}
	cfg.ActivityWindow, err = parseInt(getEnv("ACTIVITY_WINDOW", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVITY_WINDOW: %w", err)
	}
	cfg.LeaderboardSize, err = parseInt(getEnv("LEADERBOARD_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_SIZE: %w", err)
	}
	cfg.RateLimitClaim, err = time.ParseDuration(getEnv("RATE_LIMIT_CLAIM", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CLAIM: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
