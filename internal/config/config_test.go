package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("PICK_RATE_LIMIT", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Fatalf("port = %q", cfg.AppPort)
	}
	if cfg.PickRateLimit != 60 || cfg.SessionTTL != time.Hour {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.JWTSecret != "secret" || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("token config = %q %s", cfg.JWTSecret, cfg.TokenTTL)
	}
}

func TestTokenTTLIndependentOfSessionTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("TOKEN_TTL_HOURS", "")

	cfg := Load()
	if cfg.SessionTTL != 5*time.Minute || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("session ttl = %s token ttl = %s", cfg.SessionTTL, cfg.TokenTTL)
	}

	t.Setenv("TOKEN_TTL_HOURS", "48")
	if cfg := Load(); cfg.TokenTTL != 48*time.Hour {
		t.Fatalf("token ttl = %s", cfg.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("PICK_RATE_LIMIT", "5")
	t.Setenv("PICK_RATE_WINDOW_SECONDS", "10")
	t.Setenv("REDIS_DB", "0")
	t.Setenv("API_RATE_LIMIT", "0")
	t.Setenv("SESSION_TTL_MINUTES", "abc")
	t.Setenv("LOG_JSON", "true")

	cfg := Load()
	if cfg.AppPort != "9090" || cfg.PickRateLimit != 5 || cfg.PickRateWindow != 10*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.RedisDB != 0 || cfg.APIRateLimit != 60 || cfg.SessionTTL != time.Hour {
		t.Fatalf("invalid values should fall back to defaults: %+v", cfg)
	}
	if !cfg.LogJSON {
		t.Fatalf("LOG_JSON not parsed")
	}
}
