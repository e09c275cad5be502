// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
)

const tableNamePrefix = "trie_store"

// TableName returns the database table name for the trie store name
// given, which is "trie_store" for an empty name.
func TableName(name string) string {
	if name == "" {
		return tableNamePrefix
	}
	return tableNamePrefix + "-" + name
}

// TrieStore stores trie nodes in a database table, using the
// node hash as key and the node encoding as value.
type TrieStore struct {
	table database.Table
}

// New creates the trie store table in the environment
// if it does not exist already, and returns the trie store.
func New(env database.Environment, name string) (*TrieStore, error) {
	table, err := database.CreateTable(env, TableName(name))
	if err != nil {
		return nil, fmt.Errorf("creating trie store table: %w", err)
	}

	return &TrieStore{table: table}, nil
}

// Open opens an existing trie store. It returns an error wrapping
// database.ErrTableNotFound if the trie store was never created.
func Open(env database.Environment, name string) (*TrieStore, error) {
	table, err := database.OpenTable(env, TableName(name))
	if err != nil {
		return nil, fmt.Errorf("opening trie store table: %w", err)
	}

	return &TrieStore{table: table}, nil
}

// Table returns the database table of the trie store.
func (s *TrieStore) Table() database.Table {
	return s.table
}

// Get returns the decoded node stored at the hash given, or nil if
// it is not found. Decoding failures wrap ErrDecodeNode.
func (s *TrieStore) Get(txn database.ReadTxn, hash common.Hash) (n node.Node, err error) {
	encoding, err := s.GetRaw(txn, hash)
	if err != nil {
		return nil, err
	} else if encoding == nil {
		return nil, nil
	}

	n, err = node.DecodeBytes(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeNode, hash, err)
	}

	return n, nil
}

// GetRaw returns the encoding stored at the hash given,
// or nil if it is not found.
func (s *TrieStore) GetRaw(txn database.ReadTxn, hash common.Hash) (encoding []byte, err error) {
	encoding, err = txn.Get(s.table, hash.ToBytes())
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting node %s: %w", hash, err)
	}
	return encoding, nil
}

// Put encodes and writes the node at the hash given.
func (s *TrieStore) Put(txn database.ReadWriteTxn, hash common.Hash, n node.Node) (err error) {
	buffer := bytes.NewBuffer(nil)
	err = n.Encode(buffer)
	if err != nil {
		return fmt.Errorf("encoding node %s: %w", hash, err)
	}

	err = txn.Put(s.table, hash.ToBytes(), buffer.Bytes())
	if err != nil {
		return fmt.Errorf("putting node %s: %w", hash, err)
	}
	return nil
}

// Walk calls fn for every node reachable from the root given,
// visiting each hash once, depth first. It returns an error
// wrapping ErrNodeNotFound if a reachable node is not stored.
func (s *TrieStore) Walk(txn database.ReadTxn, root common.Hash,
	fn func(hash common.Hash, n node.Node) error) (err error) {
	visited := make(map[common.Hash]struct{})
	stack := []common.Hash{root}

	for len(stack) > 0 {
		hash := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[hash]; ok {
			continue
		}
		visited[hash] = struct{}{}

		n, err := s.Get(txn, hash)
		if err != nil {
			return err
		} else if n == nil {
			return fmt.Errorf("%w: %s", ErrNodeNotFound, hash)
		}

		err = fn(hash, n)
		if err != nil {
			return err
		}

		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return nil
}
