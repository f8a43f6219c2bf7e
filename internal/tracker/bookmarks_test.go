// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

func TestTogglePairing(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())

	assert.True(t, b.Toggle("chapter-1", "sec-2", "Encapsulation"))
	assert.True(t, b.IsBookmarked("chapter-1", "sec-2"))

	assert.False(t, b.Toggle("chapter-1", "sec-2", "Encapsulation"))
	assert.False(t, b.IsBookmarked("chapter-1", "sec-2"))
	assert.Empty(t, b.All())
}

func TestToggleEmptySectionIsItsOwnClass(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())

	assert.True(t, b.Toggle("chapter-1", "", "Chapter 1"))
	assert.True(t, b.Toggle("chapter-1", "sec-1", "Section 1"))
	assert.Len(t, b.All(), 2)

	assert.False(t, b.Toggle("chapter-1", "", "Chapter 1"))
	assert.True(t, b.IsBookmarked("chapter-1", "sec-1"))
	assert.False(t, b.IsBookmarked("chapter-1", ""))
}

func TestAddAllowsDuplicatesOfSamePlace(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())

	first := b.Add(&Bookmark{ChapterID: "chapter-1", SectionID: "sec-1", Title: "One"})
	second := b.Add(&Bookmark{ChapterID: "chapter-1", SectionID: "sec-1", Title: "Two"})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, b.All(), 2)
	assert.Equal(t, DefaultCategory, first.Category)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "chapter-1", Title: "Keep"})

	assert.False(t, b.Remove("missing"))
	assert.Len(t, b.All(), 1)
}

func TestUpdateMergesFields(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	bm := b.Add(&Bookmark{ChapterID: "chapter-1", Title: "Old", Category: "review"})

	title := "New"
	tags := []string{"oop", "design"}
	updated := b.Update(bm.ID, BookmarkUpdate{Title: &title, Tags: &tags})
	require.NotNil(t, updated)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "review", updated.Category)
	assert.NotNil(t, updated.UpdatedAt)

	assert.Nil(t, b.Update("missing", BookmarkUpdate{Title: &title}))
}

func TestSearchMatchesTitleLabelCategory(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", Title: "Polymorphism Basics"})
	b.Add(&Bookmark{ChapterID: "c2", Title: "Other", Label: "poly demo"})
	b.Add(&Bookmark{ChapterID: "c3", Title: "Third", Category: "polymorphism"})
	b.Add(&Bookmark{ChapterID: "c4", Title: "Unrelated"})

	assert.Len(t, b.Search("POLY"), 3)
	assert.Empty(t, b.Search("inheritance"))
}

func TestCategoriesAndTagsAreDistinctSorted(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", Category: "review", Tags: []string{"b", "a"}})
	b.Add(&Bookmark{ChapterID: "c2", Category: "review", Tags: []string{"a", "c"}})
	b.Add(&Bookmark{ChapterID: "c3"})

	assert.Equal(t, []string{DefaultCategory, "review"}, b.Categories())
	assert.Equal(t, []string{"a", "b", "c"}, b.AllTags())
}

func TestSorted(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c2", Title: "beta"})
	b.Add(&Bookmark{ChapterID: "c1", Title: "Alpha"})

	byTitle := b.Sorted(SortByTitle, SortAsc)
	assert.Equal(t, "Alpha", byTitle[0].Title)

	byChapter := b.Sorted(SortByChapter, SortDesc)
	assert.Equal(t, "c2", byChapter[0].ChapterID)
}

func TestExportImportRoundTrip(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", SectionID: "s1", Title: "One", Tags: []string{"x"}})
	b.Add(&Bookmark{ChapterID: "c2", Title: "Two", Note: "remember this"})

	data, name, err := b.ExportJSON()
	require.NoError(t, err)
	assert.Regexp(t, `^bookmarks-\d{4}-\d{2}-\d{2}\.json$`, name)

	fresh := NewBookmarks(storage.NewMemory())
	require.True(t, fresh.ImportJSON(data))

	want := map[string]*Bookmark{}
	for _, bm := range b.All() {
		want[bm.ID] = bm
	}
	got := fresh.All()
	require.Len(t, got, len(want))
	for _, bm := range got {
		original, ok := want[bm.ID]
		require.True(t, ok)
		assert.Equal(t, original.Title, bm.Title)
		assert.Equal(t, original.ChapterID, bm.ChapterID)
		assert.Equal(t, original.Tags, bm.Tags)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", Title: "Keep"})

	assert.False(t, b.ImportJSON([]byte(`{"chapterId":"c9"}`)))
	assert.False(t, b.ImportJSON([]byte(`not json`)))
	assert.Len(t, b.All(), 1)
}

func TestImportRejectsNullEntries(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", Title: "Keep"})

	assert.False(t, b.ImportJSON([]byte(`[null]`)))
	assert.False(t, b.ImportJSON([]byte(`[{"id":"bm1","chapterId":"c9","title":"New"},null]`)))

	// The store is untouched and still fully traversable.
	assert.Len(t, b.All(), 1)
	assert.Empty(t, b.Search("New"))
	assert.True(t, b.IsBookmarked("c1", ""))
}

func TestImportAppendsWithoutDeduplication(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", Title: "Keep"})

	data, _, err := b.ExportJSON()
	require.NoError(t, err)
	require.True(t, b.ImportJSON(data))
	assert.Len(t, b.All(), 2)
}

func TestClearAllRequiresConfirmation(t *testing.T) {
	b := NewBookmarks(storage.NewMemory())
	b.Add(&Bookmark{ChapterID: "c1", Title: "Keep"})

	assert.False(t, b.ClearAll(nil))
	assert.Len(t, b.All(), 1)

	assert.True(t, b.ClearAll(func(string) bool { return true }))
	assert.Empty(t, b.All())
}

func TestBookmarksPersistAcrossInstances(t *testing.T) {
	backend := storage.NewMemory()

	b1 := NewBookmarks(backend)
	bm := b1.Add(&Bookmark{ChapterID: "c1", Title: "Durable"})

	b2 := NewBookmarks(backend)
	got := b2.Get(bm.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Durable", got.Title)
}
