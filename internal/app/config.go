package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Driver       string // Document store driver: "sqlite" or "postgres"
	DatabaseFile string // SQLite database file (sqlite driver)
	DatabaseDSN  string // Connection string (postgres driver)

	TokenSecret   string        // Required: HMAC-SHA256 shared secret
	TokenIssuer   string        // Issuer claim
	TokenAudience string        // Audience claim
	TokenExpiry   time.Duration // Token lifetime (configured in minutes)

	LoginAttempts int           // Authentication attempts allowed per window per username
	LoginWindow   time.Duration // Throttle window

	SMTPHost string // Optional: when empty, mail delivery is disabled
	SMTPPort int
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
}

func LoadConfig() Config {
	// Local overrides; absent files are fine.
	_ = godotenv.Load(".env")

	return Config{
		Driver:       getEnvOrDefault("USERBASE_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault("USERBASE_DATABASE_FILE", "userbase.db"),
		DatabaseDSN:  os.Getenv("USERBASE_DATABASE_DSN"),

		TokenSecret:   os.Getenv("USERBASE_TOKEN_SECRET"),
		TokenIssuer:   getEnvOrDefault("USERBASE_TOKEN_ISSUER", "userbase"),
		TokenAudience: getEnvOrDefault("USERBASE_TOKEN_AUDIENCE", "userbase-clients"),
		TokenExpiry:   time.Duration(getEnvIntOrDefault("USERBASE_TOKEN_EXPIRY_MINUTES", 60)) * time.Minute,

		LoginAttempts: getEnvIntOrDefault("USERBASE_LOGIN_ATTEMPTS", 5),
		LoginWindow:   getEnvDurationOrDefault("USERBASE_LOGIN_WINDOW", time.Minute),

		SMTPHost: os.Getenv("USERBASE_SMTP_HOST"),
		SMTPPort: getEnvIntOrDefault("USERBASE_SMTP_PORT", 587),
		SMTPFrom: os.Getenv("USERBASE_SMTP_FROM"),
		SMTPUser: os.Getenv("USERBASE_SMTP_USER"),
		SMTPPass: os.Getenv("USERBASE_SMTP_PASS"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
