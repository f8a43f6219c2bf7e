// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ChloeZhou1997/booktrack/internal/cmd"
	"github.com/ChloeZhou1997/booktrack/internal/config"
	"github.com/ChloeZhou1997/booktrack/internal/storage"
	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "booktrack: failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// Storage backend selection via config (BOOKTRACK_STORAGE overrides).
	// Default: "file" (one JSON file per store).
	// Options: "file", "sqlite", "memory" (no persistence).
	// If the durable backend cannot be opened the tool stays usable on an
	// in-memory store, it just forgets everything on exit.
	var backend storage.Backend

	switch cfg.Storage {
	case "file":
		fileBackend, err := storage.OpenFile(cfg.DataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open data directory %s: %v\n", cfg.DataDir, err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			backend = storage.NewMemory()
			break
		}
		backend = fileBackend

	case "sqlite":
		sqliteBackend, err := storage.OpenSQLite(filepath.Join(cfg.DataDir, "booktrack.db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open SQLite database: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			backend = storage.NewMemory()
			break
		}
		backend = sqliteBackend

	case "memory":
		backend = storage.NewMemory()

	default:
		fmt.Fprintf(os.Stderr, "booktrack: unknown storage backend %q (choose file, sqlite, or memory)\n", cfg.Storage)
		os.Exit(1)
	}
	defer backend.Close()

	trk := tracker.New(backend, cfg.TotalChapters, tracker.WithLogger(log))

	root := cmd.NewRootCmd(cfg, trk)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
