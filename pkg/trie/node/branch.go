// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/ChainSafe/triestore/lib/common"
	"github.com/qdm12/gotree"
)

// ChildrenCapacity is the number of pointer slots of a branch,
// one per possible next key byte.
const ChildrenCapacity = 256

// PointerKind is the kind of node a pointer references.
type PointerKind byte

const (
	// LeafPointer references a leaf node.
	LeafPointer PointerKind = 0
	// NodePointer references a branch or extension node.
	NodePointer PointerKind = 1
)

func (k PointerKind) String() string {
	switch k {
	case LeafPointer:
		return "leaf"
	case NodePointer:
		return "node"
	default:
		return fmt.Sprintf("unknown(%d)", byte(k))
	}
}

// Pointer references a child node by its hash.
type Pointer struct {
	Kind PointerKind
	Hash common.Hash
}

func (p Pointer) String() string {
	return p.Kind.String() + " " + p.Hash.String()
}

// PointerBlock holds the pointer slots of a branch. Empty slots are nil.
type PointerBlock [ChildrenCapacity]*Pointer

var _ Node = (*Branch)(nil)

// Branch is a branch node of the trie.
type Branch struct {
	PointerBlock PointerBlock
}

// Kind returns BranchKind.
func (*Branch) Kind() Kind { return BranchKind }

func (*Branch) sealed() {}

// Children returns the hashes of every non-empty slot,
// leaf and node pointers alike, in slot order. The same hash
// appears more than once if several slots point to it.
func (b *Branch) Children() (children []common.Hash) {
	children = make([]common.Hash, 0, b.NumChildren())
	for _, pointer := range b.PointerBlock {
		if pointer == nil {
			continue
		}
		children = append(children, pointer.Hash)
	}
	return children
}

// NumChildren returns the number of non-empty slots.
func (b *Branch) NumChildren() (count int) {
	for _, pointer := range b.PointerBlock {
		if pointer != nil {
			count++
		}
	}
	return count
}

// ChildrenBitmap returns the 256 bits bitmap of the non-empty
// slots, where slot i is bit i%8 of byte i/8.
func (b *Branch) ChildrenBitmap() (bitmap [ChildrenCapacity / 8]byte) {
	for i, pointer := range b.PointerBlock {
		if pointer == nil {
			continue
		}
		bitmap[i/8] |= 1 << (i % 8)
	}
	return bitmap
}

func (b *Branch) String() string {
	return b.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (b *Branch) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Branch")
	stringNode.Appendf("Children: %d", b.NumChildren())
	for i, pointer := range b.PointerBlock {
		if pointer == nil {
			continue
		}
		stringNode.Appendf("Slot %d: %s", i, pointer)
	}
	return stringNode
}
