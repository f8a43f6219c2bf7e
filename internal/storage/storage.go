// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

// Package storage provides the named-slot persistence medium the tracker
// stores write their documents to. Each logical store owns exactly one
// slot and rewrites it wholesale; backends only need Get/Set/Delete on
// opaque byte values.
package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when a slot has never been written.
var ErrNotFound = errors.New("storage: slot not found")

// Backend is a key-value persistence medium holding one serialized
// document per named slot. Implementations must be safe for use from a
// single goroutine; the tracker never issues concurrent calls.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
