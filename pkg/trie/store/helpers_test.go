// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"testing"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/internal/database/memory"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestEnvironment(t *testing.T) database.Environment {
	t.Helper()

	env, err := memory.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		err := env.Close()
		require.NoError(t, err)
	})
	return env
}

func newTestTrieStore(t *testing.T, env database.Environment) *TrieStore {
	t.Helper()

	store, err := New(env, "")
	require.NoError(t, err)
	return store
}

func newTestScratchTrieStore(store *TrieStore, env database.Environment) *ScratchTrieStore {
	s := NewScratchTrieStore(store, env)
	s.cachedGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "cached"})
	s.hitCounter = prometheus.NewCounter(prometheus.CounterOpts{Name: "hit"})
	s.missCounter = prometheus.NewCounter(prometheus.CounterOpts{Name: "miss"})
	s.putCounter = prometheus.NewCounter(prometheus.CounterOpts{Name: "put"})
	s.flushedCounter = prometheus.NewCounter(prometheus.CounterOpts{Name: "flushed"})
	return s
}

func encodeAndHash(t *testing.T, n node.Node) (encoding []byte, hash common.Hash) {
	t.Helper()

	encoding, hash, err := node.EncodeAndHash(n)
	require.NoError(t, err)
	return encoding, hash
}

func hashOf(t *testing.T, n node.Node) common.Hash {
	t.Helper()

	_, hash := encodeAndHash(t, n)
	return hash
}

// testTrie is a small trie where two branches share the same leaf:
//
//	root -> branchA -> leaf
//	     -> branchB -> leaf
//	                -> otherLeaf
type testTrie struct {
	leaf, otherLeaf, branchA, branchB, root node.Node
	leafHash, otherLeafHash                 common.Hash
	branchAHash, branchBHash, rootHash      common.Hash
}

func newTestTrie(t *testing.T) (trie testTrie) {
	t.Helper()

	trie.leaf = &node.Leaf{Key: []byte{1}, Value: []byte{1}}
	trie.leafHash = hashOf(t, trie.leaf)
	trie.otherLeaf = &node.Leaf{Key: []byte{2}, Value: []byte{2}}
	trie.otherLeafHash = hashOf(t, trie.otherLeaf)

	trie.branchA = &node.Branch{
		PointerBlock: node.PointerBlock{
			1: {Kind: node.LeafPointer, Hash: trie.leafHash},
		},
	}
	trie.branchAHash = hashOf(t, trie.branchA)

	trie.branchB = &node.Branch{
		PointerBlock: node.PointerBlock{
			1: {Kind: node.LeafPointer, Hash: trie.leafHash},
			2: {Kind: node.LeafPointer, Hash: trie.otherLeafHash},
		},
	}
	trie.branchBHash = hashOf(t, trie.branchB)

	trie.root = &node.Branch{
		PointerBlock: node.PointerBlock{
			0xa: {Kind: node.NodePointer, Hash: trie.branchAHash},
			0xb: {Kind: node.NodePointer, Hash: trie.branchBHash},
		},
	}
	trie.rootHash = hashOf(t, trie.root)

	return trie
}

func (tt testTrie) nodes() map[common.Hash]node.Node {
	return map[common.Hash]node.Node{
		tt.leafHash:      tt.leaf,
		tt.otherLeafHash: tt.otherLeaf,
		tt.branchAHash:   tt.branchA,
		tt.branchBHash:   tt.branchB,
		tt.rootHash:      tt.root,
	}
}

// getFromStore reads a node directly from the trie store,
// bypassing any scratch cache.
func getFromStore(t *testing.T, env database.Environment,
	store *TrieStore, hash common.Hash) node.Node {
	t.Helper()

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	n, err := store.Get(txn, hash)
	require.NoError(t, err)
	return n
}

func putInStore(t *testing.T, env database.Environment,
	store *TrieStore, nodes ...node.Node) {
	t.Helper()

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	for _, n := range nodes {
		err = store.Put(txn, hashOf(t, n), n)
		require.NoError(t, err)
	}
	err = txn.Commit()
	require.NoError(t, err)
}

func cacheEntries(t *testing.T, s *ScratchTrieStore) map[common.Hash]cachedNode {
	t.Helper()

	entriesCopy := make(map[common.Hash]cachedNode)
	err := s.cache.with(func(entries map[common.Hash]cachedNode) error {
		for hash, entry := range entries {
			entriesCopy[hash] = entry
		}
		return nil
	})
	require.NoError(t, err)
	return entriesCopy
}
