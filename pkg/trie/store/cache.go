// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"fmt"
	"sync"

	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
)

// cachedNode is a node held by the scratch cache. A dirty node was
// put during the session and is not known to be in the database.
// A clean node was read from the database.
type cachedNode struct {
	dirty bool
	node  node.Node
}

// cache is a mutex protected map of hash to cached node.
// A panic while the mutex is held poisons the cache, and all
// subsequent operations then fail with ErrPoisoned.
type cache struct {
	mutex    sync.Mutex
	poisoned bool
	entries  map[common.Hash]cachedNode
}

func newCache() *cache {
	return &cache{
		entries: make(map[common.Hash]cachedNode),
	}
}

// with runs fn with exclusive access to the cache entries.
func (c *cache) with(fn func(entries map[common.Hash]cachedNode) error) (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.poisoned {
		return fmt.Errorf("%w", ErrPoisoned)
	}

	defer func() {
		if r := recover(); r != nil {
			c.poisoned = true
			panic(r)
		}
	}()

	return fn(c.entries)
}
