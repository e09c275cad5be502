// Copyright 2019 ChainSafe Systems (ON) Corp.
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2bHash returns the 256-bit blake2b hash of the input data
func Blake2bHash(in []byte) Hash {
	return blake2b.Sum256(in)
}
