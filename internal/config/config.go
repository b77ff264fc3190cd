package config

import (
	"os"
	"strings"

	"gorm.io/gorm/logger"
)

// Backend kinds accepted in STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the server configuration
type Config struct {
	Addr    string
	DBPath  string
	DBLog   logger.LogLevel
	Backend string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment, falling back to defaults
func Load() Config {
	backend := strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite))
	if backend != BackendMemory {
		backend = BackendSQLite
	}

	return Config{
		Addr:    getEnv("STORAGE_ADDR", ":8008"),
		DBPath:  getEnv("STORAGE_DB_PATH", "storage-control.db"),
		DBLog:   parseLogLevel(getEnv("STORAGE_DB_LOG", "warn")),
		Backend: backend,
	}
}

func parseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
