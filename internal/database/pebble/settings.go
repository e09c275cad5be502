// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pebble

import (
	"errors"
	"fmt"
)

var (
	ErrPathSetInMemory = errors.New("path cannot be set for an in-memory database")
	ErrPathNotSet      = errors.New("path must be set for an on-disk database")
)

// Settings is the pebble database settings.
type Settings struct {
	// Path is the database directory path to use.
	Path string
	// InMemory is whether to keep the database in memory only,
	// using pebble's in-memory file system.
	InMemory bool
}

// Validate validates the settings.
func (s Settings) Validate() (err error) {
	switch {
	case s.InMemory && s.Path != "":
		return fmt.Errorf("%w: %s", ErrPathSetInMemory, s.Path)
	case !s.InMemory && s.Path == "":
		return fmt.Errorf("%w", ErrPathNotSet)
	}
	return nil
}
