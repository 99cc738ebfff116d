package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_ENV", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "release" {
		t.Fatalf("Mode=%q, want release", cfg.Mode)
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port=%d, want 8080", cfg.Port)
	}
	if cfg.ReadLimit != 32768 {
		t.Fatalf("ReadLimit=%d, want 32768", cfg.ReadLimit)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Fatalf("PingPeriod=%v, want 54s", cfg.PingPeriod)
	}
	if len(cfg.STUNURLs) != 1 {
		t.Fatalf("STUNURLs=%v, want one default entry", cfg.STUNURLs)
	}
}

func TestLoad_ReadsEnvSelectedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "test")

	yaml := `mode: debug
port: 9999
ping_period: 30s
allowed_origins:
  - https://nervis.dev
  - http://localhost:3001
turn_url: turn:turn.nervis.dev:3478
turn_username: relay
turn_credential: hunter2
transcript_path: /tmp/chat.db
`
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "debug" || cfg.Port != 9999 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.PingPeriod != 30*time.Second {
		t.Fatalf("PingPeriod=%v, want 30s", cfg.PingPeriod)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins=%v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.TranscriptPath != "/tmp/chat.db" {
		t.Fatalf("TranscriptPath=%q", cfg.TranscriptPath)
	}
}
