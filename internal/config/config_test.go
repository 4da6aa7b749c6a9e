package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/johnwards/portaldiff/internal/config"
)

// clearEnv blanks every config variable so a developer's shell does not leak
// into the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORTALDIFF_ADDR",
		"PORTALDIFF_DB",
		"PORTALDIFF_HUBSPOT_BASE_URL",
		"PORTALDIFF_SESSION_TTL",
		"PORTALDIFF_CACHE_TTL",
		"PORTALDIFF_CLEANUP_INTERVAL",
		"PORTALDIFF_REQUEST_TIMEOUT",
		"PORTALDIFF_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, ":memory:")
	}
	if cfg.HubSpotBaseURL != "" {
		t.Errorf("HubSpotBaseURL = %q, want empty", cfg.HubSpotBaseURL)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v, want 15m", cfg.CacheTTL)
	}
	if cfg.CleanupInterval != 5*time.Minute {
		t.Errorf("CleanupInterval = %v, want 5m", cfg.CleanupInterval)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTALDIFF_ADDR", ":9090")
	t.Setenv("PORTALDIFF_DB", "/tmp/portaldiff-test.db")
	t.Setenv("PORTALDIFF_HUBSPOT_BASE_URL", "http://localhost:8081")
	t.Setenv("PORTALDIFF_SESSION_TTL", "30m")
	t.Setenv("PORTALDIFF_REQUEST_TIMEOUT", "5s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.DBPath != "/tmp/portaldiff-test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/portaldiff-test.db")
	}
	if cfg.HubSpotBaseURL != "http://localhost:8081" {
		t.Errorf("HubSpotBaseURL = %q, want %q", cfg.HubSpotBaseURL, "http://localhost:8081")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}

func TestLoadBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTALDIFF_SESSION_TTL", "one hour")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load() error = nil, want parse failure")
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPSTREAM_HOST", "emulator.local")

	dir := t.TempDir()
	path := filepath.Join(dir, "portaldiff.yml")
	content := "addr: \":7070\"\nhubspot_base_url: \"http://${UPSTREAM_HOST}:8081\"\ncache_ttl: 2m\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("PORTALDIFF_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":7070")
	}
	if cfg.HubSpotBaseURL != "http://emulator.local:8081" {
		t.Errorf("HubSpotBaseURL = %q, want expanded host", cfg.HubSpotBaseURL)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
	// Unset keys still fall back to defaults.
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "portaldiff.yml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("PORTALDIFF_CONFIG", path)
	t.Setenv("PORTALDIFF_ADDR", ":9999")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want env value :9999", cfg.Addr)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTALDIFF_CONFIG", filepath.Join(t.TempDir(), "absent.yml"))

	if _, err := config.Load(); err == nil {
		t.Fatal("Load() error = nil, want read failure")
	}
}
