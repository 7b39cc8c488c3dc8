package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	APIBaseURL string

	RedisURL string

	UserEmail string
	UserName  string
	UserRole  string

	HTTPTimeout   time.Duration
	SnapshotTTL   time.Duration
	MessageDir    string
	FallbackRetry int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		HTTPTimeout:   10 * time.Second,
		SnapshotTTL:   5 * time.Minute,
		FallbackRetry: 3,
		UserRole:      "authenticated",
	}

	cfg.APIBaseURL = strings.TrimSpace(os.Getenv("GAMER_API_BASE_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	cfg.UserEmail = strings.TrimSpace(os.Getenv("USER_EMAIL"))
	cfg.UserName = strings.TrimSpace(os.Getenv("USER_NAME"))
	if v := strings.TrimSpace(os.Getenv("USER_ROLE")); v != "" {
		cfg.UserRole = v
	}

	cfg.MessageDir = strings.TrimSpace(os.Getenv("MESSAGE_DIR"))

	if v := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("SNAPSHOT_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SnapshotTTL = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("SEARCH_RETRY_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FallbackRetry = n
		}
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("GAMER_API_BASE_URL is required")
	}

	return cfg, nil
}
