package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Epistemic-Technology/pdfsplit/internal/logger"
)

// Config holds the settings shared by the CLI and the MCP server
type Config struct {
	// PresetsFile is an optional YAML file extending the builtin pattern presets
	PresetsFile string
	// OutputDir is where finished archives are delivered
	OutputDir string
	Log       logger.LogConfig
}

// FromEnv reads PDFSPLIT_PRESETS_FILE, PDFSPLIT_OUTPUT_DIR and the LOG_*
// variables. Unset logging fields stay empty for the logger's own defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		PresetsFile: os.Getenv("PDFSPLIT_PRESETS_FILE"),
		OutputDir:   os.Getenv("PDFSPLIT_OUTPUT_DIR"),
		Log: logger.LogConfig{
			Output:   os.Getenv("LOG_OUTPUT"),
			Level:    os.Getenv("LOG_LEVEL"),
			FilePath: os.Getenv("LOG_FILE_PATH"),
		},
	}
	if cfg.OutputDir == "" {
		dir, err := DefaultOutputDir()
		if err != nil {
			return cfg, err
		}
		cfg.OutputDir = dir
	}
	return cfg, nil
}

// DefaultOutputDir is ~/.pdfsplit/archives
func DefaultOutputDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pdfsplit", "archives"), nil
}
