package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Words.Length != 6 || cfg.Game.MaxAttempts != 6 {
		t.Errorf("game defaults = %d letters / %d attempts", cfg.Words.Length, cfg.Game.MaxAttempts)
	}
	if cfg.Leaderboard.Policy != "decay" || cfg.Leaderboard.Timezone != "Asia/Kolkata" {
		t.Errorf("leaderboard defaults = %q / %q", cfg.Leaderboard.Policy, cfg.Leaderboard.Timezone)
	}
}

func TestLoadTimeoutAsNanoseconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  read_timeout: 3000000000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("read timeout = %v, want 3s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("write timeout = %v, want defaulted 10s", cfg.Server.WriteTimeout)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_WORDS_FILE", "/srv/words.txt")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 9000\nwords:\n  file: ${TEST_WORDS_FILE}\nleaderboard:\n  policy: attempts\n  timezone: UTC\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want defaulted 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Words.File != "/srv/words.txt" {
		t.Errorf("words.file = %q, env not expanded", cfg.Words.File)
	}
	if cfg.Leaderboard.Policy != "attempts" {
		t.Errorf("policy = %q", cfg.Leaderboard.Policy)
	}
	if loc, err := cfg.Location(); err != nil || loc != time.UTC {
		t.Errorf("Location() = %v, %v", loc, err)
	}
	// Unset fields still default.
	if cfg.Game.MaxAttempts != 6 {
		t.Errorf("max attempts = %d, want defaulted 6", cfg.Game.MaxAttempts)
	}
}
