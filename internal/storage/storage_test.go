// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendUnderTest exercises the Backend contract shared by every
// implementation.
func backendUnderTest(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Get(ctx, "booktrack:progress")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Set(ctx, "booktrack:progress", []byte(`{"chapters":{}}`)))
	got, err := b.Get(ctx, "booktrack:progress")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"chapters":{}}`), got)

	// Whole-slot overwrite.
	require.NoError(t, b.Set(ctx, "booktrack:progress", []byte(`{}`)))
	got, err = b.Get(ctx, "booktrack:progress")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)

	require.NoError(t, b.Delete(ctx, "booktrack:progress"))
	_, err = b.Get(ctx, "booktrack:progress")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing slot is not an error.
	require.NoError(t, b.Delete(ctx, "booktrack:progress"))
}

func TestMemoryBackend(t *testing.T) {
	backendUnderTest(t, NewMemory())
}

func TestFileBackend(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	backendUnderTest(t, f)
}

func TestFileBackendSanitizesSlotNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	f, err := OpenFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(context.Background(), "booktrack:notes", []byte(`[]`)))
	_, err = os.Stat(filepath.Join(dir, "booktrack_notes.json"))
	assert.NoError(t, err)
}

func TestSQLiteBackend(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "booktrack.db"))
	require.NoError(t, err)
	defer s.Close()
	backendUnderTest(t, s)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booktrack.db")

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(context.Background(), "booktrack:bookmarks", []byte(`[]`)))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.Get(context.Background(), "booktrack:bookmarks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}
