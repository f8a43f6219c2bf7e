// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

// Notes is the note store. Like bookmarks, the whole note list is one
// persisted JSON array.
type Notes struct {
	doc *document[[]*Note]
	now func() time.Time
}

func newNoteList() []*Note {
	return []*Note{}
}

// NewNotes loads the notes document from the backend.
func NewNotes(backend storage.Backend, opts ...Option) *Notes {
	o := applyOptions(opts)
	return &Notes{
		doc: loadDocument(backend, notesSlot, newNoteList, o.log),
		now: o.nowFn,
	}
}

// Add appends a note, assigning its id and stamping both timestamps.
// Content may be empty; Tags is normalized to a non-nil slice.
func (n *Notes) Add(note *Note) *Note {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.Category == "" {
		note.Category = DefaultCategory
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	now := n.now()
	note.CreatedAt = now
	note.UpdatedAt = now
	n.doc.value = append(n.doc.value, note)
	n.doc.persist()
	return note
}

// Get returns the note with the given id, or nil.
func (n *Notes) Get(id string) *Note {
	for _, note := range n.doc.value {
		if note.ID == id {
			return note
		}
	}
	return nil
}

// Remove deletes the note with the given id. Unknown ids are a no-op
// reporting false.
func (n *Notes) Remove(id string) bool {
	for i, note := range n.doc.value {
		if note.ID == id {
			n.doc.value = append(n.doc.value[:i], n.doc.value[i+1:]...)
			n.doc.persist()
			return true
		}
	}
	return false
}

// NoteUpdate carries the fields Update merges; nil fields are left
// untouched.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
}

// Update merges the given fields into a note and always stamps its
// update time. Unknown ids are a no-op returning nil.
func (n *Notes) Update(id string, update NoteUpdate) *Note {
	note := n.Get(id)
	if note == nil {
		return nil
	}
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Category != nil {
		note.Category = *update.Category
	}
	if update.Tags != nil {
		note.Tags = *update.Tags
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}
	note.UpdatedAt = n.now()
	n.doc.persist()
	return note
}

// AddTags merges tags into a note as a set union; duplicates are
// dropped case-sensitively, matching the persisted values.
func (n *Notes) AddTags(id string, tags []string) *Note {
	note := n.Get(id)
	if note == nil {
		return nil
	}
	existing := make(map[string]struct{}, len(note.Tags))
	for _, t := range note.Tags {
		existing[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := existing[t]; ok {
			continue
		}
		existing[t] = struct{}{}
		note.Tags = append(note.Tags, t)
	}
	note.UpdatedAt = n.now()
	n.doc.persist()
	return note
}

// RemoveTag removes one tag from a note. Unknown ids or tags are
// no-ops.
func (n *Notes) RemoveTag(id, tag string) *Note {
	note := n.Get(id)
	if note == nil {
		return nil
	}
	kept := make([]string, 0, len(note.Tags))
	for _, t := range note.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	note.Tags = kept
	note.UpdatedAt = n.now()
	n.doc.persist()
	return note
}

// Search returns notes whose content or any tag contains the query,
// case-insensitively.
func (n *Notes) Search(query string) []*Note {
	query = strings.ToLower(query)
	var out []*Note
	for _, note := range n.doc.value {
		if strings.Contains(strings.ToLower(note.Content), query) {
			out = append(out, note)
			continue
		}
		for _, tag := range note.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				out = append(out, note)
				break
			}
		}
	}
	return out
}

// ByCategory returns the notes in a category.
func (n *Notes) ByCategory(category string) []*Note {
	var out []*Note
	for _, note := range n.doc.value {
		if strings.EqualFold(note.Category, category) {
			out = append(out, note)
		}
	}
	return out
}

// ByChapter returns the notes attached to a chapter.
func (n *Notes) ByChapter(chapterID string) []*Note {
	var out []*Note
	for _, note := range n.doc.value {
		if note.ChapterID == chapterID {
			out = append(out, note)
		}
	}
	return out
}

// Categories returns the distinct categories in use, sorted.
func (n *Notes) Categories() []string {
	seen := make(map[string]struct{})
	for _, note := range n.doc.value {
		seen[note.Category] = struct{}{}
	}
	return sortedKeys(seen)
}

// AllTags returns the distinct tags in use, sorted.
func (n *Notes) AllTags() []string {
	seen := make(map[string]struct{})
	for _, note := range n.doc.value {
		for _, tag := range note.Tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Sorted returns a copy of the note list ordered by the given field.
// Unknown fields fall back to creation time.
func (n *Notes) Sorted(by SortField, direction SortDirection) []*Note {
	out := make([]*Note, len(n.doc.value))
	copy(out, n.doc.value)
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch by {
		case SortByTitle:
			less = strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		case SortByChapter:
			less = out[i].ChapterID < out[j].ChapterID
		case SortByUpdated:
			less = out[i].UpdatedAt.Before(out[j].UpdatedAt)
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

// All returns a copy of the note list in insertion order.
func (n *Notes) All() []*Note {
	out := make([]*Note, len(n.doc.value))
	copy(out, n.doc.value)
	return out
}

// Statistics returns note counts grouped by category and chapter plus
// the 5 most recently updated notes.
func (n *Notes) Statistics() NoteStatistics {
	stats := NoteStatistics{
		Total:      len(n.doc.value),
		ByCategory: make(map[string]int),
		ByChapter:  make(map[string]int),
	}
	for _, note := range n.doc.value {
		stats.ByCategory[note.Category]++
		stats.ByChapter[note.ChapterID]++
	}
	recent := n.Sorted(SortByUpdated, SortDesc)
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentlyUpdated = recent
	return stats
}

// ExportMarkdown renders notes as a heading-per-chapter document with
// category, tags and creation time metadata lines followed by the note
// body and a separator rule. An empty chapterID exports every chapter.
func (n *Notes) ExportMarkdown(chapterID string) []byte {
	byChapter := make(map[string][]*Note)
	for _, note := range n.doc.value {
		if chapterID != "" && note.ChapterID != chapterID {
			continue
		}
		byChapter[note.ChapterID] = append(byChapter[note.ChapterID], note)
	}

	chapters := make([]string, 0, len(byChapter))
	for ch := range byChapter {
		chapters = append(chapters, ch)
	}
	sort.Strings(chapters)

	var buf bytes.Buffer
	buf.WriteString("# Study Notes\n\n")
	buf.WriteString(fmt.Sprintf("Generated: %s\n\n", n.now().Format(time.RFC3339)))

	for _, ch := range chapters {
		buf.WriteString(fmt.Sprintf("## %s\n\n", ch))
		notes := byChapter[ch]
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.Before(notes[j].CreatedAt)
		})
		for _, note := range notes {
			title := note.Title
			if title == "" {
				title = "Untitled note"
			}
			buf.WriteString(fmt.Sprintf("### %s\n\n", title))
			buf.WriteString("**Category:** " + note.Category + "\n\n")
			if len(note.Tags) > 0 {
				buf.WriteString("**Tags:** " + strings.Join(note.Tags, ", ") + "\n\n")
			}
			buf.WriteString("**Created:** " + note.CreatedAt.Format(time.RFC3339) + "\n\n")
			if note.Content != "" {
				buf.WriteString(note.Content + "\n\n")
			}
			buf.WriteString("---\n\n")
		}
	}
	return buf.Bytes()
}

// ExportHTML renders the Markdown export to HTML. The e-book shows
// notes as rich text, so the export surface carries an HTML form too.
func (n *Notes) ExportHTML(chapterID string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(n.ExportMarkdown(chapterID), &buf); err != nil {
		return nil, errors.Wrap(err, "render notes html")
	}
	return buf.Bytes(), nil
}

// ExportJSON serializes the full note list, pretty-printed, along with
// a date-stamped download name.
func (n *Notes) ExportJSON() ([]byte, string, error) {
	data, err := json.MarshalIndent(n.doc.value, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "marshal notes")
	}
	return data, "notes-" + n.now().Format("2006-01-02") + ".json", nil
}

// ImportJSON appends every entry of a serialized note array, with the
// same permissive semantics as bookmark import: array or nothing, no
// per-field validation, no mutation on failure.
func (n *Notes) ImportJSON(data []byte) bool {
	imported, err := decodeNoteList(data)
	if err != nil {
		return false
	}
	for _, note := range imported {
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}
	n.doc.value = append(n.doc.value, imported...)
	n.doc.persist()
	return true
}

// decodeNoteList is the single validation point for note imports.
// Arrays holding null elements are rejected wholesale, since a nil
// entry would blow up every later traversal of the list.
func decodeNoteList(data []byte) ([]*Note, error) {
	var imported []*Note
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, errors.Wrap(err, "decode note list")
	}
	for _, note := range imported {
		if note == nil {
			return nil, errors.New("decode note list: null entry")
		}
	}
	return imported, nil
}

// ClearAll replaces the list with an empty one. Requires confirmation.
func (n *Notes) ClearAll(confirm Confirmer) bool {
	if confirm == nil || !confirm("Delete all notes? This cannot be undone.") {
		return false
	}
	n.doc.reset()
	return true
}
