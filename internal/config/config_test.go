package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `default_store = "main"

[stores]
main = "/data/main.db"
staging = "/data/staging.db"

[rollup]
page_size = 50
sleep_ms = 250
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.DefaultStore != "main" {
		t.Errorf("expected default_store 'main', got %q", cfg.DefaultStore)
	}
	if cfg.Rollup.PageSize != 50 {
		t.Errorf("expected page_size 50, got %d", cfg.Rollup.PageSize)
	}
	if cfg.Rollup.SleepMs != 250 {
		t.Errorf("expected sleep_ms 250, got %d", cfg.Rollup.SleepMs)
	}

	path2, err := cfg.GetStorePath("staging")
	if err != nil {
		t.Fatalf("GetStorePath failed: %v", err)
	}
	if path2 != "/data/staging.db" {
		t.Errorf("expected staging path, got %q", path2)
	}

	defPath, err := cfg.GetStorePath("")
	if err != nil {
		t.Fatalf("GetStorePath default failed: %v", err)
	}
	if defPath != "/data/main.db" {
		t.Errorf("expected default path, got %q", defPath)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("default_store = ["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestGetStorePathMissing(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetStorePath(""); err == nil {
		t.Error("expected error when no default store configured")
	}
	if _, err := cfg.GetStorePath("nope"); err == nil {
		t.Error("expected error for unknown store name")
	}
}
