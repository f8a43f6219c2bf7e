// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

// Package tracker implements the e-book's persistence and derived
// analytics layer: reading progress, interaction analytics, bookmarks
// and notes. Each store keeps its whole state in one JSON document in a
// named storage slot and rewrites it after every mutation.
package tracker

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

// Storage slot names, one per logical store.
const (
	progressSlot  = "booktrack:progress"
	analyticsSlot = "booktrack:analytics"
	bookmarksSlot = "booktrack:bookmarks"
	notesSlot     = "booktrack:notes"
)

// document wraps one persisted JSON value: load once at construction,
// persist after every mutation. Load and persist failures never reach
// the stores' callers; the in-memory value stays authoritative for the
// rest of the session.
type document[T any] struct {
	backend storage.Backend
	key     string
	def     func() T
	value   T
	log     zerolog.Logger
}

// loadDocument reads the slot, falling back to def() when the slot is
// absent, unreadable, or holds a corrupt document.
func loadDocument[T any](backend storage.Backend, key string, def func() T, log zerolog.Logger) *document[T] {
	d := &document[T]{backend: backend, key: key, def: def, log: log}
	data, err := backend.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			d.log.Warn().Err(err).Str("slot", key).Msg("load failed, starting from default")
		}
		d.value = def()
		return d
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		d.log.Warn().Err(err).Str("slot", key).Msg("corrupt document, starting from default")
		d.value = def()
		return d
	}
	d.value = value
	return d
}

// persist rewrites the whole document. Failures are logged and
// swallowed: the mutation that triggered the write has already been
// applied in memory and must not be rolled back.
func (d *document[T]) persist() {
	data, err := json.Marshal(d.value)
	if err != nil {
		d.log.Warn().Err(err).Str("slot", d.key).Msg("marshal failed, document not persisted")
		return
	}
	if err := d.backend.Set(context.Background(), d.key, data); err != nil {
		d.log.Warn().Err(err).Str("slot", d.key).Msg("persist failed, keeping in-memory state")
	}
}

// reset replaces the value with the default shape and persists it.
func (d *document[T]) reset() {
	d.value = d.def()
	d.persist()
}
