// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
	"github.com/prometheus/client_golang/prometheus"
)

// ScratchTrieStore buffers written trie nodes in memory, reads through
// to the trie store on cache misses, and writes the nodes reachable
// from a root to the trie store with WriteRootToDB.
// Copies of a ScratchTrieStore share the same cache and are safe
// for concurrent use.
type ScratchTrieStore struct {
	cache *cache
	store *TrieStore
	env   database.Environment

	cachedGauge    prometheus.Gauge
	hitCounter     prometheus.Counter
	missCounter    prometheus.Counter
	putCounter     prometheus.Counter
	flushedCounter prometheus.Counter
}

// NewScratchTrieStore returns a scratch store with an empty cache, on
// top of the trie store given. The environment is used to open the
// read-write transaction of WriteRootToDB.
func NewScratchTrieStore(store *TrieStore, env database.Environment) *ScratchTrieStore {
	return &ScratchTrieStore{
		cache:          newCache(),
		store:          store,
		env:            env,
		cachedGauge:    cachedGauge,
		hitCounter:     hitCounter,
		missCounter:    missCounter,
		putCounter:     putCounter,
		flushedCounter: flushedCounter,
	}
}

// Get returns the node at the hash from the cache, whether dirty or clean.
// On a cache miss, the node is read from the trie store using the
// transaction given and is cached as clean, unless another node was
// cached at that hash in the meantime. It returns nil and no error
// if the node is found neither in the cache nor in the trie store.
func (s *ScratchTrieStore) Get(txn database.ReadTxn, hash common.Hash) (n node.Node, err error) {
	var found bool
	err = s.cache.with(func(entries map[common.Hash]cachedNode) error {
		entry, ok := entries[hash]
		if ok {
			n = entry.node
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	} else if found {
		s.hitCounter.Inc()
		return n, nil
	}

	s.missCounter.Inc()
	n, err = s.store.Get(txn, hash)
	if err != nil {
		return nil, err
	} else if n == nil {
		return nil, nil
	}

	err = s.cache.with(func(entries map[common.Hash]cachedNode) error {
		if _, ok := entries[hash]; !ok {
			entries[hash] = cachedNode{node: n}
			s.cachedGauge.Set(float64(len(entries)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

// Put caches the node as dirty at the hash given, overwriting any
// cached node. The transaction is not used since nothing is written
// to the trie store until WriteRootToDB is called.
func (s *ScratchTrieStore) Put(_ database.ReadWriteTxn, hash common.Hash, n node.Node) (err error) {
	err = s.cache.with(func(entries map[common.Hash]cachedNode) error {
		entries[hash] = cachedNode{dirty: true, node: n}
		s.cachedGauge.Set(float64(len(entries)))
		return nil
	})
	if err != nil {
		return err
	}

	s.putCounter.Inc()
	return nil
}

// WriteRootToDB validates that every node reachable from the root is
// either cached as dirty or already in the trie store, and writes all
// the dirty reachable nodes to the trie store in a single read-write
// transaction.
//
// The read-write transaction is opened before the cache lock is taken,
// so Get and Put are not blocked while waiting for another writer.
// It must not be called by a goroutine holding a read-write transaction
// of the environment, since it would wait for that transaction forever.
//
// Every reachable cached node is removed from the cache. Clean nodes
// and nodes found in the trie store are not descended into, since
// their subtrees are already in the trie store. A node reachable
// through several parents is validated and written once.
// It fails with a *MissingTrieError if the cache becomes empty
// before the traversal ends, or if a reachable node is neither cached
// nor in the trie store. On failure, nothing is written to the trie
// store and the removed nodes are put back in the cache.
func (s *ScratchTrieStore) WriteRootToDB(root common.Hash) (err error) {
	txn, err := s.env.NewReadWriteTxn()
	if err != nil {
		return fmt.Errorf("creating read-write transaction: %w", err)
	}
	defer txn.Discard()

	return s.cache.with(func(entries map[common.Hash]cachedNode) (err error) {
		removed := make(map[common.Hash]cachedNode)
		defer func() {
			if err != nil {
				for hash, entry := range removed {
					entries[hash] = entry
				}
			}
			s.cachedGauge.Set(float64(len(entries)))
		}()

		validated, err := s.validate(txn, entries, removed, root)
		if err != nil {
			return err
		}

		hashes := make([]common.Hash, 0, len(validated))
		for hash := range validated {
			hashes = append(hashes, hash)
		}
		sort.Slice(hashes, func(i, j int) bool {
			return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
		})

		for _, hash := range hashes {
			err = s.store.Put(txn, hash, validated[hash])
			if err != nil {
				return err
			}
		}

		err = txn.Commit()
		if err != nil {
			return fmt.Errorf("committing trie nodes: %w", err)
		}

		s.flushedCounter.Add(float64(len(hashes)))
		logger.Debug("root written to database", "root", root, "nodes", len(hashes))
		return nil
	})
}

// validate removes the cached nodes reachable from the root, recording
// them in removed, and returns the dirty ones.
func (s *ScratchTrieStore) validate(txn database.ReadTxn,
	entries, removed map[common.Hash]cachedNode, root common.Hash) (
	validated map[common.Hash]node.Node, err error) {
	validated = make(map[common.Hash]node.Node)
	missing := []common.Hash{root}

	for len(missing) > 0 {
		hash := missing[len(missing)-1]
		missing = missing[:len(missing)-1]

		if _, ok := validated[hash]; ok {
			continue
		}

		if len(entries) == 0 {
			return nil, &MissingTrieError{Hash: hash}
		}

		entry, ok := entries[hash]
		if !ok {
			encoding, err := s.store.GetRaw(txn, hash)
			if err != nil {
				return nil, err
			} else if encoding == nil {
				return nil, &MissingTrieError{Hash: hash}
			}
			continue
		}

		delete(entries, hash)
		removed[hash] = entry
		if !entry.dirty {
			continue
		}

		missing = append(missing, entry.node.Children()...)
		validated[hash] = entry.node
	}

	return validated, nil
}
