// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

// DefaultCategory is assigned to bookmarks and notes created without an
// explicit category.
const DefaultCategory = "general"

// Bookmarks is the bookmark store. The whole bookmark list is one
// persisted JSON array.
//
// Identity is deliberately asymmetric: Toggle keeps at most one
// bookmark per (chapter, section) pair, while Add appends without
// looking, so manually created duplicates of the same pair can coexist.
type Bookmarks struct {
	doc *document[[]*Bookmark]
	now func() time.Time
}

func newBookmarkList() []*Bookmark {
	return []*Bookmark{}
}

// NewBookmarks loads the bookmark document from the backend.
func NewBookmarks(backend storage.Backend, opts ...Option) *Bookmarks {
	o := applyOptions(opts)
	return &Bookmarks{
		doc: loadDocument(backend, bookmarksSlot, newBookmarkList, o.log),
		now: o.nowFn,
	}
}

// Add appends a bookmark, assigning its id and creation time. It never
// deduplicates; use Toggle for the one-per-place behavior.
func (b *Bookmarks) Add(bm *Bookmark) *Bookmark {
	if bm.ID == "" {
		bm.ID = shortuuid.New()
	}
	if bm.Category == "" {
		bm.Category = DefaultCategory
	}
	bm.CreatedAt = b.now()
	b.doc.value = append(b.doc.value, bm)
	b.doc.persist()
	return bm
}

// Remove deletes the bookmark with the given id. Unknown ids are a
// no-op reporting false.
func (b *Bookmarks) Remove(id string) bool {
	for i, bm := range b.doc.value {
		if bm.ID == id {
			b.doc.value = append(b.doc.value[:i], b.doc.value[i+1:]...)
			b.doc.persist()
			return true
		}
	}
	return false
}

// Toggle flips the bookmark state of a (chapter, section) place. An
// empty sectionID is its own match class. Returns true when a bookmark
// was created, false when the existing one was removed.
func (b *Bookmarks) Toggle(chapterID, sectionID, title string) bool {
	for i, bm := range b.doc.value {
		if bm.ChapterID == chapterID && bm.SectionID == sectionID {
			b.doc.value = append(b.doc.value[:i], b.doc.value[i+1:]...)
			b.doc.persist()
			return false
		}
	}
	b.Add(&Bookmark{
		ChapterID: chapterID,
		SectionID: sectionID,
		Title:     title,
		Category:  DefaultCategory,
	})
	return true
}

// IsBookmarked reports whether a (chapter, section) place has a
// bookmark.
func (b *Bookmarks) IsBookmarked(chapterID, sectionID string) bool {
	for _, bm := range b.doc.value {
		if bm.ChapterID == chapterID && bm.SectionID == sectionID {
			return true
		}
	}
	return false
}

// Get returns the bookmark with the given id, or nil.
func (b *Bookmarks) Get(id string) *Bookmark {
	for _, bm := range b.doc.value {
		if bm.ID == id {
			return bm
		}
	}
	return nil
}

// BookmarkUpdate carries the fields Update merges; nil fields are left
// untouched.
type BookmarkUpdate struct {
	Title    *string
	Label    *string
	Category *string
	Tags     *[]string
	Note     *string
}

// Update merges the given fields into a bookmark and stamps its update
// time. Unknown ids are a no-op returning nil.
func (b *Bookmarks) Update(id string, update BookmarkUpdate) *Bookmark {
	bm := b.Get(id)
	if bm == nil {
		return nil
	}
	if update.Title != nil {
		bm.Title = *update.Title
	}
	if update.Label != nil {
		bm.Label = *update.Label
	}
	if update.Category != nil {
		bm.Category = *update.Category
	}
	if update.Tags != nil {
		bm.Tags = *update.Tags
	}
	if update.Note != nil {
		bm.Note = *update.Note
	}
	now := b.now()
	bm.UpdatedAt = &now
	b.doc.persist()
	return bm
}

// Search returns bookmarks whose title, label, or category contains the
// query, case-insensitively.
func (b *Bookmarks) Search(query string) []*Bookmark {
	query = strings.ToLower(query)
	var out []*Bookmark
	for _, bm := range b.doc.value {
		if strings.Contains(strings.ToLower(bm.Title), query) ||
			strings.Contains(strings.ToLower(bm.Label), query) ||
			strings.Contains(strings.ToLower(bm.Category), query) {
			out = append(out, bm)
		}
	}
	return out
}

// ByCategory returns the bookmarks in a category.
func (b *Bookmarks) ByCategory(category string) []*Bookmark {
	var out []*Bookmark
	for _, bm := range b.doc.value {
		if strings.EqualFold(bm.Category, category) {
			out = append(out, bm)
		}
	}
	return out
}

// Categories returns the distinct categories in use, sorted.
func (b *Bookmarks) Categories() []string {
	seen := make(map[string]struct{})
	for _, bm := range b.doc.value {
		seen[bm.Category] = struct{}{}
	}
	return sortedKeys(seen)
}

// AllTags returns the distinct tags in use, sorted.
func (b *Bookmarks) AllTags() []string {
	seen := make(map[string]struct{})
	for _, bm := range b.doc.value {
		for _, tag := range bm.Tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Sorted returns a copy of the bookmark list ordered by the given
// field. Unknown fields fall back to creation time.
func (b *Bookmarks) Sorted(by SortField, direction SortDirection) []*Bookmark {
	out := make([]*Bookmark, len(b.doc.value))
	copy(out, b.doc.value)
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch by {
		case SortByTitle:
			less = strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		case SortByChapter:
			less = out[i].ChapterID < out[j].ChapterID
		default:
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if direction == SortDesc {
			return !less
		}
		return less
	})
	return out
}

// All returns a copy of the bookmark list in insertion order.
func (b *Bookmarks) All() []*Bookmark {
	out := make([]*Bookmark, len(b.doc.value))
	copy(out, b.doc.value)
	return out
}

// ExportJSON serializes the full bookmark list, pretty-printed, along
// with a date-stamped download name.
func (b *Bookmarks) ExportJSON() ([]byte, string, error) {
	data, err := json.MarshalIndent(b.doc.value, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "marshal bookmarks")
	}
	return data, "bookmarks-" + b.now().Format("2006-01-02") + ".json", nil
}

// ImportJSON appends every entry of a serialized bookmark array.
// Anything that does not parse as an array is rejected wholesale; on
// failure the store is left untouched. Entries are taken verbatim,
// without deduplication.
func (b *Bookmarks) ImportJSON(data []byte) bool {
	imported, err := decodeBookmarkList(data)
	if err != nil {
		return false
	}
	b.doc.value = append(b.doc.value, imported...)
	b.doc.persist()
	return true
}

// decodeBookmarkList is the single validation point for bookmark
// imports. It accepts any JSON array of bookmark-shaped objects;
// stricter schema checks belong here and nowhere else. Arrays holding
// null elements are rejected wholesale, since a nil entry would blow up
// every later traversal of the list.
func decodeBookmarkList(data []byte) ([]*Bookmark, error) {
	var imported []*Bookmark
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, errors.Wrap(err, "decode bookmark list")
	}
	for _, bm := range imported {
		if bm == nil {
			return nil, errors.New("decode bookmark list: null entry")
		}
	}
	return imported, nil
}

// ClearAll replaces the list with an empty one. Requires confirmation.
func (b *Bookmarks) ClearAll(confirm Confirmer) bool {
	if confirm == nil || !confirm("Delete all bookmarks? This cannot be undone.") {
		return false
	}
	b.doc.reset()
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
