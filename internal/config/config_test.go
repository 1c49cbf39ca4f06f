package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBPath != "./data/students.db" {
		t.Errorf("Expected default db path, got %q", cfg.DBPath)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("Expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiTimeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", cfg.GeminiTimeout)
	}
	if cfg.ProfileUpsert {
		t.Error("Expected profile upsert disabled by default")
	}
	if cfg.RateLimit.RequestsPerWindow != 10 {
		t.Errorf("Expected default rate limit 10, got %d", cfg.RateLimit.RequestsPerWindow)
	}
	if cfg.RateLimit.WindowDuration != time.Minute {
		t.Errorf("Expected default window 1m, got %v", cfg.RateLimit.WindowDuration)
	}
	if cfg.MaxRequestBodySize != 1<<20 {
		t.Errorf("Expected default body size 1MB, got %d", cfg.MaxRequestBodySize)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "60")
	t.Setenv("PROFILE_UPSERT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("Expected overridden model, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiTimeout != 60*time.Second {
		t.Errorf("Expected timeout 60s, got %v", cfg.GeminiTimeout)
	}
	if !cfg.ProfileUpsert {
		t.Error("Expected profile upsert enabled")
	}
	if cfg.RateLimit.RequestsPerWindow != 5 {
		t.Errorf("Expected rate limit 5, got %d", cfg.RateLimit.RequestsPerWindow)
	}
	if !cfg.ChatEnabled() {
		t.Error("Expected chat enabled with an API key set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"empty model", func(c *Config) { c.GeminiModel = "" }, true},
		{"zero timeout", func(c *Config) { c.GeminiTimeout = 0 }, true},
		{"zero rate limit", func(c *Config) { c.RateLimit.RequestsPerWindow = 0 }, true},
		{"zero window", func(c *Config) { c.RateLimit.WindowDuration = 0 }, true},
		{"zero body size", func(c *Config) { c.MaxRequestBodySize = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Port:          "8080",
				DBPath:        "./data/students.db",
				GeminiModel:   "gemini-2.0-flash",
				GeminiTimeout: 30 * time.Second,
				RateLimit: RateLimitConfig{
					RequestsPerWindow: 10,
					WindowDuration:    time.Minute,
				},
				MaxRequestBodySize: 1 << 20,
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestChatEnabled(t *testing.T) {
	cfg := &Config{}
	if cfg.ChatEnabled() {
		t.Error("Expected chat disabled without an API key")
	}
	cfg.GeminiAPIKey = "key"
	if !cfg.ChatEnabled() {
		t.Error("Expected chat enabled with an API key")
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		frontendURL string
		want        bool
	}{
		{"empty url", "", true},
		{"localhost", "http://localhost:3000", true},
		{"loopback", "http://127.0.0.1:3000", true},
		{"production", "https://uniassist.example.com", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{FrontendURL: tc.frontendURL}
			if got := cfg.IsDevelopment(); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"garbage", false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL_FLAG", tc.value)
			if got := getEnvBool("TEST_BOOL_FLAG", false); got != tc.want {
				t.Errorf("Expected %v for %q, got %v", tc.want, tc.value, got)
			}
		})
	}
}
