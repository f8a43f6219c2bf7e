// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// File is a Backend that keeps one JSON file per slot under a data
// directory. This is the default medium: a direct analogue of one
// browser-local-storage key per document.
type File struct {
	dir string
}

// OpenFile creates the data directory if needed and returns a
// file-backed store rooted there.
func OpenFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &File{dir: dir}, nil
}

// path maps a slot key to a file name. Slot keys are namespaced with
// colons, which are not portable in file names.
func (f *File) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(f.dir, name)
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "read slot %s", key)
	}
	return data, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	// Write through a temp file so a crash mid-write cannot leave a
	// truncated document behind.
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return errors.Wrapf(err, "write slot %s", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "replace slot %s", key)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete slot %s", key)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
