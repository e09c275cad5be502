// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"io"

	"github.com/ChainSafe/triestore/lib/common"
	"github.com/qdm12/gotree"
)

// Node is a node of the Merkle trie. It is one of *Leaf,
// *Branch or *Extension. Nodes are immutable once constructed,
// and their identity is the blake2b-256 hash of their encoding.
type Node interface {
	Kind() Kind
	// Children returns the hashes of the immediate children of the
	// node, in slot order. It returns nil for a leaf.
	Children() (children []common.Hash)
	Encode(writer io.Writer) (err error)
	String() string
	StringNode() (stringNode *gotree.Node)
	// sealed restricts the implementations to this package.
	sealed()
}
