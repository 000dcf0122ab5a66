package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://override:x@db:5432/reviews?sslmode=disable")
	t.Setenv("JWT_SECRET", "env-secret")

	cfgPath := writeConfig(t, `
port: "8080"
logLevel: "info"
databaseURL: "postgres://file:x@localhost:5432/reviews?sslmode=disable"
jwtSecret: "file-secret"
`)
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL != "postgres://override:x@db:5432/reviews?sslmode=disable" {
		t.Fatalf("databaseURL not overridden: %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Fatalf("jwtSecret not overridden: %q", cfg.JWTSecret)
	}
	if cfg.Storage != StoragePostgres {
		t.Fatalf("storage default = %q, want %q", cfg.Storage, StoragePostgres)
	}
	if cfg.SessionStrategy != SessionJWT {
		t.Fatalf("sessionStrategy default = %q, want %q", cfg.SessionStrategy, SessionJWT)
	}
}

func TestLoadRejectsMissingJWTSecret(t *testing.T) {
	cfgPath := writeConfig(t, `
port: "8080"
storage: "memory"
`)
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected error for jwt sessions without secret")
	}
}

func TestLoadRejectsRateLimitWithoutRedis(t *testing.T) {
	cfgPath := writeConfig(t, `
port: "8080"
storage: "memory"
jwtSecret: "s"
loginRateLimitPerMinute: 5
`)
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected error for rate limit without redisAddr")
	}
}

func TestParseSessionTTL(t *testing.T) {
	ttl, err := ParseSessionTTL("")
	if err != nil || ttl != 24*time.Hour {
		t.Fatalf("default ttl = %v, %v", ttl, err)
	}
	ttl, err = ParseSessionTTL("90m")
	if err != nil || ttl != 90*time.Minute {
		t.Fatalf("parsed ttl = %v, %v", ttl, err)
	}
	if _, err := ParseSessionTTL("-1h"); err == nil {
		t.Fatalf("expected error for negative ttl")
	}
	if _, err := ParseSessionTTL("soon"); err == nil {
		t.Fatalf("expected error for invalid ttl")
	}
}
