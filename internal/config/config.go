package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	// Backend
	APIBaseURL     string
	RequestTimeout time.Duration

	// Outgoing request rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int

	// Session
	SessionFile      string
	InactivityWindow time.Duration
	WatchInterval    time.Duration

	Env string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080"),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 15*time.Second),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 20),
		SessionFile:        getEnv("SESSION_FILE", defaultSessionFile()),
		InactivityWindow:   getDuration("INACTIVITY_WINDOW", time.Hour),
		WatchInterval:      getDuration("SESSION_WATCH_INTERVAL", time.Second),
		Env:                getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("SESSION_FILE is required")
	}
	if c.InactivityWindow <= 0 {
		return fmt.Errorf("INACTIVITY_WINDOW must be positive")
	}
	return nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "ledgerline", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
