package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// setBaseEnv provides the minimum viable environment; t.Setenv restores the
// previous values after the test.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "blogger")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "blogdb")
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_POOL_SIZE",
		"JWT_TOKEN_DURATION", "PORT",
		"HEALTH_PING_URL", "HEALTH_PING_INTERVAL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 || cfg.DB.MaxSize != 10 {
		t.Fatalf("unexpected DB defaults: %+v", cfg.DB)
	}
	if cfg.Auth.TokenDuration != 24*time.Hour {
		t.Fatalf("expected 24h token duration, got %s", cfg.Auth.TokenDuration)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.HealthPing.PingURL != "" || cfg.HealthPing.Interval != 15*time.Minute {
		t.Fatalf("unexpected health ping defaults: %+v", cfg.HealthPing)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_POOL_SIZE", "50")
	t.Setenv("JWT_TOKEN_DURATION", "1h")
	t.Setenv("PORT", "9090")
	t.Setenv("HEALTH_PING_URL", "https://example.com/health")
	t.Setenv("HEALTH_PING_INTERVAL", "5m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 5433 || cfg.DB.MaxSize != 50 {
		t.Fatalf("overrides not applied: %+v", cfg.DB)
	}
	if cfg.Auth.TokenDuration != time.Hour {
		t.Fatalf("expected 1h token duration, got %s", cfg.Auth.TokenDuration)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.HealthPing.PingURL != "https://example.com/health" || cfg.HealthPing.Interval != 5*time.Minute {
		t.Fatalf("health ping overrides not applied: %+v", cfg.HealthPing)
	}
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_USER", "")
	os.Unsetenv("DB_USER")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadConfig()
	if err == nil {
		t.Fatalf("expected LoadConfig to fail")
	}
	for _, want := range []string{"DB_USER", "JWT_SECRET", "DB_PORT"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestLoadConfigRejectsPoolSizeOutOfBounds(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_POOL_SIZE", "1")

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "DB_POOL_SIZE") {
		t.Fatalf("expected an error naming DB_POOL_SIZE, got: %v", err)
	}

	t.Setenv("DB_POOL_SIZE", "500")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "DB_POOL_SIZE") {
		t.Fatalf("expected an error naming DB_POOL_SIZE, got: %v", err)
	}
}
