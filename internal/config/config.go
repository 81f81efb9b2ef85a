// Package config loads configuration from environment variables and
// sets up the process logger.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Export pipeline
	ArtifactDir string
	ArtifactTTL time.Duration
	LocatorMode string // "file" or "inline"
	PageSize    int
	BatchSize   int
	RecordCap   int
	ScoreCutoff float64

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "sanitrack"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "cleanlog"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		ArtifactDir: getEnv("CLEANLOG_ARTIFACT_DIR", filepath.Join(os.TempDir(), "cleanlog-exports")),
		ArtifactTTL: getDuration("CLEANLOG_ARTIFACT_TTL", 5*time.Minute),
		LocatorMode: getEnv("CLEANLOG_LOCATOR_MODE", "file"),
		PageSize:    getInt("CLEANLOG_PAGE_SIZE", 500),
		BatchSize:   getInt("CLEANLOG_BATCH_SIZE", 1000),
		RecordCap:   getInt("CLEANLOG_RECORD_CAP", 50000),
		// The cutoff assumes the engine's normalized [0,1] scale; it is
		// configurable in case that scale ever changes.
		ScoreCutoff: getFloat("CLEANLOG_SCORE_CUTOFF", 0.7),

		LogFile:  getEnv("CLEANLOG_LOG_FILE", "/tmp/cleanlog.log"),
		LogLevel: parseLogLevel(getEnv("CLEANLOG_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
