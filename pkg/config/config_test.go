package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("empty path should not error: %v", err)
	}
	if cfg.DebounceMS != 800 || cfg.Theme != "dracula" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "debounce_ms: 300\ntheme: nord\nlayout:\n  slot_size: 64\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DebounceMS != 300 {
		t.Errorf("DebounceMS = %d, want 300", cfg.DebounceMS)
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q, want nord", cfg.Theme)
	}
	if cfg.Layout.SlotSize != 64 {
		t.Errorf("SlotSize = %v, want 64", cfg.Layout.SlotSize)
	}
	// Untouched layout fields keep their defaults.
	if cfg.Layout.HGap != Default().Layout.HGap {
		t.Errorf("HGap = %v, want default %v", cfg.Layout.HGap, Default().Layout.HGap)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("debounce_ms: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected a parse error")
	}
}

func TestDebounceWindow(t *testing.T) {
	cfg := Config{DebounceMS: 250}
	if got := cfg.DebounceWindow(); got != 250*time.Millisecond {
		t.Errorf("window = %v, want 250ms", got)
	}
}
