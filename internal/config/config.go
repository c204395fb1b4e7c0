package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	APIBaseURL  string
	APIToken    string // optional bootstrap token, normally set by sign-in
	RedisURL    string
	HTTPTimeout time.Duration
	LogLevel    string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("PELADA_API_URL", "http://localhost:3000"),
		APIToken:    getEnv("PELADA_API_TOKEN", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", 15*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "production"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
