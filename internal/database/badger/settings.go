// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"
	"path/filepath"
)

const (
	// DefaultMemTableSize is the default memtable size in bytes.
	// Badger limits a transaction to 15% of the memtable size, so
	// 128MiB allows about 19MiB of writes in a single transaction.
	DefaultMemTableSize int64 = 128 << 20
	// MinMemTableSize is the smallest memtable size accepted, below which
	// the transaction size limit is under badger's value threshold.
	MinMemTableSize int64 = 8 << 20
)

var (
	ErrPathSetInMemory      = errors.New("path cannot be set for an in-memory database")
	ErrMemTableSizeTooSmall = errors.New("memtable size is too small")
)

// Settings is the database settings.
type Settings struct {
	// Path is the database directory path to use.
	// It defaults to the current directory if left unset
	// and the database is not in memory.
	Path string
	// InMemory is whether to keep the database in memory only.
	// It defaults to false.
	InMemory *bool
	// MemTableSize is the memtable size in bytes, which bounds the
	// size of a read-write transaction.
	// It defaults to DefaultMemTableSize.
	MemTableSize int64
}

// SetDefaults sets the default values on the settings.
func (s *Settings) SetDefaults() {
	if s.InMemory == nil {
		s.InMemory = ptrTo(false)
	}

	if s.Path == "" && !*s.InMemory {
		s.Path = "."
	}

	if s.MemTableSize == 0 {
		s.MemTableSize = DefaultMemTableSize
	}
}

// Validate validates the settings.
func (s Settings) Validate() (err error) {
	if s.MemTableSize < MinMemTableSize {
		return fmt.Errorf("%w: %d bytes must be at least %d bytes",
			ErrMemTableSizeTooSmall, s.MemTableSize, MinMemTableSize)
	}

	if *s.InMemory {
		if s.Path != "" {
			return fmt.Errorf("%w: %s", ErrPathSetInMemory, s.Path)
		}
		return nil
	}

	_, err = filepath.Abs(s.Path)
	if err != nil {
		return fmt.Errorf("changing path to absolute path: %w", err)
	}

	return nil
}

func ptrTo[T any](value T) *T { return &value }
