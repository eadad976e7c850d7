package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RATE_LIMIT_COMMENT", "15s")
	t.Setenv("COVER_STORAGE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RateLimitComment != 15*time.Second {
		t.Errorf("RateLimitComment = %v", cfg.RateLimitComment)
	}
	if cfg.JWTSecret == "" {
		t.Error("development should fall back to a JWT secret")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "RATE_LIMIT_COMMENT", "soon"},
		{"bad ttl", "JWT_TTL", "1 hour"},
		{"bad burst", "IP_RATE_LIMIT_BURST", "many"},
		{"bad storage", "COVER_STORAGE", "ftp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing JWT_SECRET to fail in production")
	}
}
