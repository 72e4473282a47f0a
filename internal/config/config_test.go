package config_test

import (
	"testing"

	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                  ":8080",
		DBPath:                "file:test.db",
		LogLevel:              "INFO",
		JWTSecret:             "test-secret",
		TokenTTLHours:         720,
		CompletionWorkerCount: 2,
		CompletionQueueSize:   64,
		DueCardLimit:          50,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_BadWorkerCount(t *testing.T) {
	cfg := validConfig()
	cfg.CompletionWorkerCount = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("COMPLETION_QUEUE_SIZE", "")

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:prepdeck.db", cfg.DBPath)
	assert.Equal(t, 64, cfg.CompletionQueueSize)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("COMPLETION_WORKER_COUNT", "lots")

	cfg := config.Load()
	assert.Equal(t, 2, cfg.CompletionWorkerCount)
}
