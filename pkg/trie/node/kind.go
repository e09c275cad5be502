// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import "fmt"

// Kind is the kind of a node, which is also encoded
// in the two high bits of the node header byte.
type Kind byte

const (
	_ Kind = iota
	// LeafKind is the kind of a leaf node, holding a key and a value.
	LeafKind
	// BranchKind is the kind of a branch node, holding a block of pointers.
	BranchKind
	// ExtensionKind is the kind of an extension node, holding
	// a shared key path affix and a single pointer.
	ExtensionKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "Leaf"
	case BranchKind:
		return "Branch"
	case ExtensionKind:
		return "Extension"
	default:
		panic(fmt.Sprintf("invalid node kind: %d", k))
	}
}
