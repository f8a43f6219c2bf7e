// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

// Package config loads the booktrack configuration file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultTotalChapters is the chapter count of the book this tracker
// ships with. Overall completion is computed against this fixed total,
// not against whichever chapters happen to have progress records.
const DefaultTotalChapters = 16

// Config holds the runtime settings.
type Config struct {
	// DataDir is where the file and sqlite backends keep their data.
	DataDir string `yaml:"data_dir"`
	// Storage selects the persistence backend: file, sqlite, or memory.
	Storage string `yaml:"storage"`
	// TotalChapters is the fixed chapter count of the book.
	TotalChapters int `yaml:"total_chapters"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DataDir:       filepath.Join(home, ".booktrack"),
		Storage:       "file",
		TotalChapters: DefaultTotalChapters,
		LogLevel:      "warn",
	}
}

// Load reads the config file from the user config directory, falling
// back to defaults when it does not exist. Environment variables
// BOOKTRACK_STORAGE, BOOKTRACK_DATA_DIR and BOOKTRACK_TOTAL_CHAPTERS
// override file values.
func Load() (*Config, error) {
	cfg := Default()

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "booktrack", "config.yaml")
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "read %s", path)
		}
	}

	if v := os.Getenv("BOOKTRACK_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("BOOKTRACK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BOOKTRACK_TOTAL_CHAPTERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.Errorf("invalid BOOKTRACK_TOTAL_CHAPTERS: %q", v)
		}
		cfg.TotalChapters = n
	}

	if cfg.TotalChapters <= 0 {
		cfg.TotalChapters = DefaultTotalChapters
	}
	return cfg, nil
}
