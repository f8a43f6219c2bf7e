// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

// Confirmer asks the user to approve a destructive operation. Reset and
// clear-all operations do nothing unless the confirmer returns true; a
// nil confirmer always declines.
type Confirmer func(prompt string) bool

type options struct {
	// nowFn overrides the clock, used by streak and histogram tests.
	nowFn func() time.Time
	log   zerolog.Logger
}

// Option configures a store at construction.
type Option func(*options)

// WithClock fixes the time source. The zero default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.nowFn = now }
}

// WithLogger sets the diagnostic logger for swallowed persistence
// failures. The zero default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

func applyOptions(opts []Option) options {
	o := options{nowFn: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tracker bundles the four stores over one storage backend. Construct
// it once at application start and pass it by reference; there are no
// package-level singletons.
type Tracker struct {
	Progress  *Progress
	Analytics *Analytics
	Bookmarks *Bookmarks
	Notes     *Notes
}

// New loads all four documents from the backend. totalChapters is the
// fixed chapter count completion is measured against.
func New(backend storage.Backend, totalChapters int, opts ...Option) *Tracker {
	return &Tracker{
		Progress:  NewProgress(backend, totalChapters, opts...),
		Analytics: NewAnalytics(backend, opts...),
		Bookmarks: NewBookmarks(backend, opts...),
		Notes:     NewNotes(backend, opts...),
	}
}
