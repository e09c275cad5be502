// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/qdm12/gotree"
)

var _ Node = (*Extension)(nil)

// Extension is a node holding a key path affix shared by all
// the keys below it, and a single pointer to the next node.
type Extension struct {
	Affix   []byte
	Pointer Pointer
}

// Kind returns ExtensionKind.
func (*Extension) Kind() Kind { return ExtensionKind }

func (*Extension) sealed() {}

// Children returns the hash of the single pointer.
func (e *Extension) Children() (children []common.Hash) {
	return []common.Hash{e.Pointer.Hash}
}

func (e *Extension) String() string {
	return e.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (e *Extension) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Extension")
	stringNode.Appendf("Affix: %s", bytesToString(e.Affix))
	stringNode.Appendf("Pointer: %s", e.Pointer)
	return stringNode
}
