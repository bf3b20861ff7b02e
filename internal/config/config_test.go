package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"MATCHD_HTTP_ADDR", "MATCHD_DB_DSN", "MATCHD_REDIS_ADDR",
		"MATCHD_MATCH_WORKERS", "MATCHD_ROUTING_MAX_SPEED_MPS",
	} {
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default HTTP addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Matching.Workers != 4 {
		t.Fatalf("expected default 4 matching workers, got %d", cfg.Matching.Workers)
	}
	if cfg.Routing.MaxSpeedMetersPerSecond != 33.0 {
		t.Fatalf("expected default max speed 33.0, got %v", cfg.Routing.MaxSpeedMetersPerSecond)
	}
}

func TestLoadHonorsOverrides(t *testing.T) {
	t.Setenv("MATCHD_MATCH_WORKERS", "8")
	t.Setenv("MATCHD_ROUTING_MAX_SPEED_MPS", "20.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.Workers != 8 {
		t.Fatalf("expected overridden worker count 8, got %d", cfg.Matching.Workers)
	}
	if cfg.Routing.MaxSpeedMetersPerSecond != 20.5 {
		t.Fatalf("expected overridden max speed 20.5, got %v", cfg.Routing.MaxSpeedMetersPerSecond)
	}
}
