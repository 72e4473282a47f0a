package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	JWTSecret             string
	TokenTTLHours         int
	CompletionWorkerCount int
	CompletionQueueSize   int
	DueCardLimit          int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:prepdeck.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		JWTSecret:             envOr("JWT_SECRET", ""),
		TokenTTLHours:         envIntOr("TOKEN_TTL_HOURS", 720),
		CompletionWorkerCount: envIntOr("COMPLETION_WORKER_COUNT", 2),
		CompletionQueueSize:   envIntOr("COMPLETION_QUEUE_SIZE", 64),
		DueCardLimit:          envIntOr("DUE_CARD_LIMIT", 50),
	}
}

// Validate reports configuration the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", c.TokenTTLHours)
	}
	if c.CompletionWorkerCount <= 0 {
		return fmt.Errorf("COMPLETION_WORKER_COUNT must be positive, got %d", c.CompletionWorkerCount)
	}
	if c.CompletionQueueSize <= 0 {
		return fmt.Errorf("COMPLETION_QUEUE_SIZE must be positive, got %d", c.CompletionQueueSize)
	}
	if c.DueCardLimit <= 0 {
		return fmt.Errorf("DUE_CARD_LIMIT must be positive, got %d", c.DueCardLimit)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
