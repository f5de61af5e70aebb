package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/christianpoveda/pijama/pkg/config"
)

func TestDefaultIsZeroValue(t *testing.T) {
	got := config.Default()
	if got.Trace || got.MaxFunctions != 0 {
		t.Fatalf("expected zero-value default, got %#v", got)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("expected Default(), got %#v", cfg)
	}
}

func TestLoadDecodesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pijama.toml")
	contents := []byte("trace = true\nmax_functions = 64\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Trace {
		t.Error("expected Trace to be true")
	}
	if cfg.MaxFunctions != 64 {
		t.Errorf("expected MaxFunctions 64, got %d", cfg.MaxFunctions)
	}
}
