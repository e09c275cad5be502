// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/triestore/lib/common"
)

var (
	ErrTrieNotFoundDuringCacheValidation = errors.New("trie not found during cache validation")
	ErrPoisoned                          = errors.New("scratch cache lock poisoned")
	ErrDecodeNode                        = errors.New("cannot decode node")
	ErrNodeNotFound                      = errors.New("node not found")
)

// MissingTrieError is returned when writing a root to the database
// and a node reachable from the root is neither buffered nor
// present in the database.
type MissingTrieError struct {
	Hash common.Hash
}

func (e *MissingTrieError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTrieNotFoundDuringCacheValidation, e.Hash)
}

func (e *MissingTrieError) Unwrap() error {
	return ErrTrieNotFoundDuringCacheValidation
}
