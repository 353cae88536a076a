package config

import (
	"path/filepath"
	"testing"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("PDFSPLIT_PRESETS_FILE", "/etc/pdfsplit/presets.yaml")
	t.Setenv("PDFSPLIT_OUTPUT_DIR", "/srv/archives")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.PresetsFile != "/etc/pdfsplit/presets.yaml" {
		t.Errorf("PresetsFile = %q", cfg.PresetsFile)
	}
	if cfg.OutputDir != "/srv/archives" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestFromEnv_Log(t *testing.T) {
	t.Setenv("LOG_OUTPUT", "stderr")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE_PATH", "/var/log/pdfsplit.log")
	t.Setenv("PDFSPLIT_OUTPUT_DIR", "/srv/archives")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Log.Output != "stderr" || cfg.Log.Level != "debug" || cfg.Log.FilePath != "/var/log/pdfsplit.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestFromEnv_DefaultOutputDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PDFSPLIT_OUTPUT_DIR", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if want := filepath.Join(home, ".pdfsplit", "archives"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
}
