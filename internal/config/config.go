// Package config centralizes the handful of environment variables the
// server and CLI drivers read, each resolved with a plain os.Getenv and
// a hardcoded default rather than a config library.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every env-derived setting the drivers need.
type Config struct {
	// Seed is read from TCG_SEED and defaults to the current time.
	// cmd/server does not pass it on: games created over the HTTP API are
	// seeded from the request's seed field, or 0 when it is absent.
	Seed int64
	// LogLevel is passed straight to logger.Init.
	LogLevel string
	// Port is the HTTP/WS listen port for cmd/server.
	Port string
	// CardDBPath is the path to the external card-database JSON file
	// consumed by the loader contract (spec §6); the engine never reads
	// it directly.
	CardDBPath string
}

// Load reads TCG_SEED, TCG_LOG_LEVEL, TCG_PORT and TCG_CARD_DB_PATH,
// defaulting each that is unset or unparsable.
func Load() Config {
	return Config{
		Seed:       loadSeed("TCG_SEED"),
		LogLevel:   loadString("TCG_LOG_LEVEL", "info"),
		Port:       loadString("TCG_PORT", "3001"),
		CardDBPath: loadString("TCG_CARD_DB_PATH", "cards.json"),
	}
}

func loadString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadSeed(key string) int64 {
	if v := os.Getenv(key); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}
