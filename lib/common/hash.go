// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// HashLength is the expected length of the common.Hash type
	HashLength = 32
)

var (
	ErrNoPrefix      = errors.New("could not byteify non 0x prefixed string")
	ErrHashLength    = errors.New("hash has an invalid length")
	EmptyHash        = Hash{}
	errEmptyHashText = errors.New("empty hash string")
)

// Hash is a blake2b-256 digest. It is the identity and
// the database key of every trie node.
type Hash [HashLength]byte

// NewHash casts a byte slice to a Hash.
// If the input is longer than 32 bytes, it takes the first 32 bytes.
func NewHash(in []byte) (res Hash) {
	copy(res[:], in)
	return res
}

// ToBytes returns a copy of the hash as a byte slice.
func (h Hash) ToBytes() []byte {
	b := [HashLength]byte(h)
	return b[:]
}

// IsEmpty returns true if the hash is the zero hash.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// String returns the 0x prefixed hex string for the hash.
func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Short returns the first 4 bytes and the last 4 bytes of the hex string for the hash
func (h Hash) Short() string {
	const nBytes = 4
	return fmt.Sprintf("0x%x...%x", h[:nBytes], h[len(h)-nBytes:])
}

// HexToHash turns a 0x prefixed hex string of exactly 32 bytes into a Hash.
func HexToHash(in string) (Hash, error) {
	if in == "" {
		return EmptyHash, errEmptyHashText
	}

	if !strings.HasPrefix(in, "0x") {
		return EmptyHash, fmt.Errorf("%w: %s", ErrNoPrefix, in)
	}

	out, err := hex.DecodeString(in[2:])
	if err != nil {
		return EmptyHash, fmt.Errorf("decoding hex string: %w", err)
	}

	if len(out) != HashLength {
		return EmptyHash, fmt.Errorf("%w: %d bytes instead of %d",
			ErrHashLength, len(out), HashLength)
	}

	return NewHash(out), nil
}

// MustHexToHash turns a 0x prefixed hex string into type Hash
// it panics if it cannot turn the string into a Hash
func MustHexToHash(in string) Hash {
	h, err := HexToHash(in)
	if err != nil {
		panic(err)
	}
	return h
}
