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
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Label != "VACATION" {
		t.Fatalf("default label %q", cfg.Label)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Fatalf("default interval %s", cfg.PollInterval())
	}
	if cfg.From != "me" {
		t.Fatalf("default from %q", cfg.From)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awaybot.toml")
	content := `label = "OOO"
vacation_start = "11/10/2023"
interval = "5m"
max_threads = 25
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Label != "OOO" {
		t.Fatalf("label %q", cfg.Label)
	}
	if cfg.VacationStart != "11/10/2023" {
		t.Fatalf("vacation start %q", cfg.VacationStart)
	}
	if cfg.PollInterval() != 5*time.Minute {
		t.Fatalf("interval %s", cfg.PollInterval())
	}
	if cfg.MaxThreads != 25 {
		t.Fatalf("max threads %d", cfg.MaxThreads)
	}
	// untouched keys keep their defaults
	if cfg.RPS != 4 {
		t.Fatalf("rps %d", cfg.RPS)
	}
}

func TestLoadBadInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awaybot.toml")
	if err := os.WriteFile(path, []byte(`interval = "soon"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for bad interval")
	}
}

func TestValidateCutoff(t *testing.T) {
	if err := ValidateCutoff("11/10/2023"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCutoff("2023-11-10"); err == nil {
		t.Fatalf("expected error for ISO date")
	}
}
