package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TCG_SEED", "")
	t.Setenv("TCG_LOG_LEVEL", "")
	t.Setenv("TCG_PORT", "")
	t.Setenv("TCG_CARD_DB_PATH", "")

	cfg := Load()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "cards.json", cfg.CardDBPath)
	assert.NotZero(t, cfg.Seed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TCG_SEED", "42")
	t.Setenv("TCG_LOG_LEVEL", "debug")
	t.Setenv("TCG_PORT", "9090")
	t.Setenv("TCG_CARD_DB_PATH", "/tmp/cards.json")

	cfg := Load()

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/cards.json", cfg.CardDBPath)
}

func TestLoadInvalidSeedFallsBackToTimeBased(t *testing.T) {
	t.Setenv("TCG_SEED", "not-a-number")

	cfg := Load()
	assert.NotZero(t, cfg.Seed)
}
