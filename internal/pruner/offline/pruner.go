// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package offline implements an offline pruner deleting all the trie
// nodes of a trie store which are not reachable from a set of roots.
package offline

import (
	"errors"
	"fmt"

	log "github.com/ChainSafe/log15"
	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
	"github.com/ChainSafe/triestore/pkg/trie/store"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = log.New("pkg", "pruner/offline")

var (
	ErrBloomFilterNotSet = errors.New("bloom filter not set")
	ErrNoRoot            = errors.New("no root to retain")
)

// Config is the offline pruner configuration.
type Config struct {
	// BloomSize is the bloom filter size in megabytes.
	BloomSize uint64
	// BatchSize is the maximum number of deletions per
	// read-write transaction.
	BatchSize int
}

// Pruner deletes the trie nodes not reachable from retained roots.
// The database must not be written to by anything else while pruning.
type Pruner struct {
	env       database.Environment
	trieStore *store.TrieStore
	config    Config
	bloom     *bloomState

	retainedCounter prometheus.Counter
	prunedCounter   prometheus.Counter
}

// New creates an offline pruner for the trie store given.
func New(env database.Environment, trieStore *store.TrieStore, config Config) (*Pruner, error) {
	bloom, err := newBloomState(config.BloomSize)
	if err != nil {
		return nil, err
	}

	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}

	return &Pruner{
		env:       env,
		trieStore: trieStore,
		config:    config,
		bloom:     bloom,

		retainedCounter: retainedCounter,
		prunedCounter:   prunedCounter,
	}, nil
}

// SetBloomFilter records the hash of every node reachable from
// the roots given into the bloom filter. It fails if a reachable
// node is missing from the trie store.
func (p *Pruner) SetBloomFilter(roots ...common.Hash) (err error) {
	if len(roots) == 0 {
		return fmt.Errorf("%w", ErrNoRoot)
	}

	txn, err := p.env.NewReadTxn()
	if err != nil {
		return fmt.Errorf("creating read transaction: %w", err)
	}
	defer txn.Discard()

	nodesCount := 0
	for _, root := range roots {
		err = p.trieStore.Walk(txn, root, func(hash common.Hash, _ node.Node) error {
			nodesCount++
			p.retainedCounter.Inc()
			return p.bloom.put(hash.ToBytes())
		})
		if err != nil {
			return fmt.Errorf("walking trie from root %s: %w", root, err)
		}
	}

	p.bloom.set = true
	logger.Info("bloom filter set", "roots", len(roots), "nodes", nodesCount)
	return nil
}

// Prune deletes every node of the trie store which is not in the
// bloom filter, and returns the number of nodes deleted. Because of
// bloom filter false positives, a few unreachable nodes may be kept.
func (p *Pruner) Prune() (pruned int, err error) {
	if !p.bloom.set {
		return 0, fmt.Errorf("%w", ErrBloomFilterNotSet)
	}

	table := p.trieStore.Table()
	toDelete, err := p.collect(table)
	if err != nil {
		return 0, err
	}

	for start := 0; start < len(toDelete); start += p.config.BatchSize {
		end := start + p.config.BatchSize
		if end > len(toDelete) {
			end = len(toDelete)
		}

		err = p.deleteBatch(table, toDelete[start:end])
		if err != nil {
			return pruned, err
		}
		pruned += end - start
		p.prunedCounter.Add(float64(end - start))
		logger.Debug("pruned batch", "pruned", pruned, "total", len(toDelete))
	}

	logger.Info("pruning done", "pruned", pruned)
	return pruned, nil
}

func (p *Pruner) collect(table database.Table) (toDelete [][]byte, err error) {
	txn, err := p.env.NewReadTxn()
	if err != nil {
		return nil, fmt.Errorf("creating read transaction: %w", err)
	}
	defer txn.Discard()

	err = txn.Iterate(table, func(key, _ []byte) error {
		if p.bloom.contain(key) {
			return nil
		}
		toDelete = append(toDelete, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating trie store: %w", err)
	}

	return toDelete, nil
}

func (p *Pruner) deleteBatch(table database.Table, keys [][]byte) (err error) {
	txn, err := p.env.NewReadWriteTxn()
	if err != nil {
		return fmt.Errorf("creating read-write transaction: %w", err)
	}
	defer txn.Discard()

	for _, key := range keys {
		err = txn.Delete(table, key)
		if err != nil {
			return fmt.Errorf("deleting node 0x%x: %w", key, err)
		}
	}

	err = txn.Commit()
	if err != nil {
		return fmt.Errorf("committing deletions: %w", err)
	}
	return nil
}
