// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package offline

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ChainSafe/triestore/lib/common"
	bloomfilter "github.com/holiman/bloomfilter/v2"
)

// ErrKeySize is returned when a key is not a node hash.
var ErrKeySize = errors.New("key is not 32 bytes")

// bloomStateHasher uses the first 8 bytes of a node hash as the
// 64 bit hash of the bloom filter, since node hashes are already
// uniformly distributed.
type bloomStateHasher []byte

func (f bloomStateHasher) Write(p []byte) (n int, err error) { panic("not implemented") }
func (f bloomStateHasher) Sum(b []byte) []byte               { panic("not implemented") }
func (f bloomStateHasher) Reset()                            { panic("not implemented") }
func (f bloomStateHasher) BlockSize() int                    { panic("not implemented") }
func (f bloomStateHasher) Size() int                         { return 8 }
func (f bloomStateHasher) Sum64() uint64                     { return binary.BigEndian.Uint64(f) }

// bloomState records the hashes of all the retained nodes, so that
// the pruning stage never deletes a retained node.
type bloomState struct {
	bloom *bloomfilter.Filter
	set   bool
}

// newBloomState creates a bloom filter of the size given in megabytes.
func newBloomState(size uint64) (*bloomState, error) {
	bloom, err := bloomfilter.New(size*1024*1024*8, 4)
	if err != nil {
		return nil, fmt.Errorf("creating bloom filter: %w", err)
	}
	logger.Info("initialised state bloom", "bytes", bloom.M()/8)
	return &bloomState{bloom: bloom}, nil
}

// put writes the key to the bloom filter.
func (sb *bloomState) put(key []byte) error {
	if len(key) != common.HashLength {
		return fmt.Errorf("%w: 0x%x", ErrKeySize, key)
	}

	sb.bloom.Add(bloomStateHasher(key))
	return nil
}

// contain reports whether the key may be contained.
// If it returns false, the key is definitely not contained.
func (sb *bloomState) contain(key []byte) bool {
	if len(key) != common.HashLength {
		return false
	}
	return sb.bloom.Contains(bloomStateHasher(key))
}
