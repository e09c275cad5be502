// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/ChainSafe/triestore/lib/common"
	"github.com/qdm12/gotree"
)

var _ Node = (*Leaf)(nil)

// Leaf is a leaf of the trie holding a raw key and a raw value.
type Leaf struct {
	Key   []byte
	Value []byte
}

// Kind returns LeafKind.
func (*Leaf) Kind() Kind { return LeafKind }

// Children returns nil since a leaf has no children.
func (*Leaf) Children() (children []common.Hash) { return nil }

func (*Leaf) sealed() {}

func (l *Leaf) String() string {
	return l.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (l *Leaf) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Leaf")
	stringNode.Appendf("Key: %s", bytesToString(l.Key))
	stringNode.Appendf("Value: %s", bytesToString(l.Value))
	return stringNode
}

func bytesToString(b []byte) (s string) {
	switch {
	case b == nil:
		return "nil"
	case len(b) <= 20:
		return fmt.Sprintf("0x%x", b)
	default:
		return fmt.Sprintf("0x%x...%x", b[:8], b[len(b)-8:])
	}
}
