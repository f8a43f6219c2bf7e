// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

// failingBackend reads fine but refuses every write.
type failingBackend struct {
	*storage.Memory
}

func (f *failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestCorruptDocumentFallsBackToDefault(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(context.Background(), progressSlot, []byte(`{"chapters": nonsense`)))

	p := NewProgress(backend, testTotalChapters)
	assert.Equal(t, ChapterProgress{}, p.ChapterProgress("chapter-1"))

	// The store stays fully usable after the fallback.
	p.MarkChapterRead("chapter-1", 50)
	assert.Equal(t, 50.0, p.ChapterProgress("chapter-1").PercentageRead)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	backend := &failingBackend{Memory: storage.NewMemory()}

	p := NewProgress(backend, testTotalChapters)
	p.MarkChapterRead("chapter-1", 85)

	// The mutation that triggered the failing write is still applied.
	assert.Equal(t, 85.0, p.ChapterProgress("chapter-1").PercentageRead)
	assert.Equal(t, 1, p.Overall().ChaptersCompleted)
}

func TestLastMutationWins(t *testing.T) {
	backend := storage.NewMemory()

	p1 := NewProgress(backend, testTotalChapters)
	p1.MarkChapterRead("chapter-1", 40)
	p1.MarkChapterRead("chapter-1", 70)

	p2 := NewProgress(backend, testTotalChapters)
	assert.Equal(t, 70.0, p2.ChapterProgress("chapter-1").PercentageRead)
}
