// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"bytes"
	"sync"

	"github.com/ChainSafe/triestore/lib/common"
)

var encodingBuffers = &sync.Pool{
	New: func() interface{} {
		const initialBufferCapacity = 1 + ChildrenCapacity/8 + ChildrenCapacity*pointerLength
		return bytes.NewBuffer(make([]byte, 0, initialBufferCapacity))
	},
}

// EncodeAndHash returns a copy of the encoding of the node
// and the blake2b-256 hash of that encoding.
func EncodeAndHash(n Node) (encoding []byte, hash common.Hash, err error) {
	buffer := encodingBuffers.Get().(*bytes.Buffer)
	buffer.Reset()
	defer encodingBuffers.Put(buffer)

	err = n.Encode(buffer)
	if err != nil {
		return nil, hash, err
	}

	encoding = make([]byte, buffer.Len())
	copy(encoding, buffer.Bytes())
	hash = common.Blake2bHash(encoding)
	return encoding, hash, nil
}

// Hash returns the blake2b-256 hash of the encoding of the node,
// which is its key in the trie store.
func Hash(n Node) (hash common.Hash, err error) {
	_, hash, err = EncodeAndHash(n)
	return hash, err
}
