// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package store persists trie nodes keyed by their hash, either
// directly in a database table with TrieStore, or buffered in memory
// with ScratchTrieStore until a root is written to the database.
package store

import (
	log "github.com/ChainSafe/log15"
	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
)

var logger = log.New("pkg", "trie/store")

// Store reads and writes trie nodes keyed by their hash,
// using the transaction given.
type Store interface {
	// Get returns the node stored at the hash, or nil
	// and no error if there is no such node.
	Get(txn database.ReadTxn, hash common.Hash) (n node.Node, err error)
	// Put stores the node at the hash, overwriting any previous node.
	Put(txn database.ReadWriteTxn, hash common.Hash, n node.Node) (err error)
}

var (
	_ Store = (*TrieStore)(nil)
	_ Store = (*ScratchTrieStore)(nil)
)
