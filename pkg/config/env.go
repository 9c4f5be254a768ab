package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads the nearest .env file, if any, into the process environment.
// Variables that are already set keep their value. It reports whether a
// file was loaded.
func LoadEnv(logger *slog.Logger) bool {
	path, err := FindEnvFile(".env")
	if err != nil {
		logger.Warn("No .env file found, using system environment variables")
		return false
	}
	if err := godotenv.Load(path); err != nil {
		logger.Warn("Ignoring unreadable .env file", "path", path, "error", err)
		return false
	}
	logger.Info("Environment variables loaded", "path", path)
	return true
}

// GetEnv returns the value of key, or fallback when key is unset or blank.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
