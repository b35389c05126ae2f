package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output.Format != "table" {
		t.Fatalf("expected default output format table, got %q", cfg.Output.Format)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected default log level warn, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gosql.yaml")
	contents := "output:\n  format: csv\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "csv" {
		t.Fatalf("expected format csv, got %q", cfg.Output.Format)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected level debug, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/gosql.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
