package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("Expected default base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.InactivityWindow != time.Hour {
		t.Errorf("Expected 1h inactivity window, got %s", cfg.InactivityWindow)
	}
	if cfg.SessionFile == "" {
		t.Error("Expected a default session file path")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.test")
	t.Setenv("INACTIVITY_WINDOW", "30m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIBaseURL != "https://api.example.test" {
		t.Errorf("Expected overridden base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.InactivityWindow != 30*time.Minute {
		t.Errorf("Expected 30m window, got %s", cfg.InactivityWindow)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("Expected rate limit 10, got %d", cfg.RateLimitPerMinute)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("INACTIVITY_WINDOW", "not-a-duration")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.InactivityWindow != time.Hour {
		t.Errorf("Expected fallback window, got %s", cfg.InactivityWindow)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("Expected fallback rate limit, got %d", cfg.RateLimitPerMinute)
	}
}
