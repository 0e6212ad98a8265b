package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("api base url = %q", cfg.APIBaseURL)
	}
	if cfg.Stream.MaxReconnects != 5 {
		t.Errorf("max reconnects = %d, want 5", cfg.Stream.MaxReconnects)
	}
	if got := cfg.Stream.ReconnectBase(); got != time.Second {
		t.Errorf("reconnect base = %s, want 1s", got)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
api_base_url: https://bets.example.com/api
ws_url: wss://bets.example.com/ws
stream:
  reconnect_base_ms: 500
  max_reconnects: 3
log:
  level: debug
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://bets.example.com/api" {
		t.Errorf("api base url = %q", cfg.APIBaseURL)
	}
	if got := cfg.Stream.ReconnectBase(); got != 500*time.Millisecond {
		t.Errorf("reconnect base = %s, want 500ms", got)
	}
	if cfg.Stream.MaxReconnects != 3 {
		t.Errorf("max reconnects = %d, want 3", cfg.Stream.MaxReconnects)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	// Values the file does not mention keep their defaults.
	if cfg.MetricsAddr != "127.0.0.1:9180" {
		t.Errorf("metrics addr = %q", cfg.MetricsAddr)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: https://file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SPORTSBOOK_API_URL", "https://env.example.com")
	t.Setenv("SPORTSBOOK_MAX_RECONNECTS", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Errorf("api base url = %q, want the env value", cfg.APIBaseURL)
	}
	if cfg.Stream.MaxReconnects != 9 {
		t.Errorf("max reconnects = %d, want 9", cfg.Stream.MaxReconnects)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file must be an error when a path is given")
	}
}
