// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ChainSafe/triestore/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

var (
	ErrReadHeaderByte     = errors.New("cannot read header byte")
	ErrUnknownNodeKind    = errors.New("unknown node kind")
	ErrDecodeKey          = errors.New("cannot decode key")
	ErrDecodeValue        = errors.New("cannot decode value")
	ErrReadChildrenBitmap = errors.New("cannot read children bitmap")
	ErrReadPointer        = errors.New("cannot read pointer")
	ErrUnknownPointerKind = errors.New("unknown pointer kind")
	ErrTrailingBytes      = errors.New("trailing bytes after node encoding")
)

// pointerLength is the encoded length of a pointer:
// one kind byte followed by the 32 bytes hash.
const pointerLength = 1 + common.HashLength

// Decode decodes a node from a reader.
// The reader is read only up to the end of the node encoding.
func Decode(reader io.Reader) (n Node, err error) {
	kind, err := decodeHeader(reader)
	if err != nil {
		return nil, err
	}

	switch kind {
	case LeafKind:
		n, err = decodeLeaf(reader)
		if err != nil {
			return nil, fmt.Errorf("cannot decode leaf: %w", err)
		}
	case BranchKind:
		n, err = decodeBranch(reader)
		if err != nil {
			return nil, fmt.Errorf("cannot decode branch: %w", err)
		}
	case ExtensionKind:
		n, err = decodeExtension(reader)
		if err != nil {
			return nil, fmt.Errorf("cannot decode extension: %w", err)
		}
	}

	return n, nil
}

// DecodeBytes decodes a node from its full encoding, and fails
// if bytes are left after the node encoding.
func DecodeBytes(encoding []byte) (n Node, err error) {
	reader := bytes.NewReader(encoding)
	n, err = Decode(reader)
	if err != nil {
		return nil, err
	}

	if reader.Len() > 0 {
		return nil, fmt.Errorf("%w: %d bytes left", ErrTrailingBytes, reader.Len())
	}

	return n, nil
}

func decodeLeaf(reader io.Reader) (leaf *Leaf, err error) {
	decoder := scale.NewDecoder(reader)
	leaf = new(Leaf)

	err = decoder.Decode(&leaf.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecodeKey, err)
	}

	err = decoder.Decode(&leaf.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecodeValue, err)
	}

	leaf.Key = nilIfEmpty(leaf.Key)
	leaf.Value = nilIfEmpty(leaf.Value)
	return leaf, nil
}

func decodeBranch(reader io.Reader) (branch *Branch, err error) {
	var childrenBitmap [ChildrenCapacity / 8]byte
	_, err = io.ReadFull(reader, childrenBitmap[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadChildrenBitmap, err)
	}

	branch = new(Branch)
	for i := 0; i < ChildrenCapacity; i++ {
		if (childrenBitmap[i/8]>>(i%8))&1 != 1 {
			continue
		}

		pointer, err := decodePointer(reader)
		if err != nil {
			return nil, fmt.Errorf("at slot %d: %w", i, err)
		}
		branch.PointerBlock[i] = &pointer
	}

	return branch, nil
}

func decodeExtension(reader io.Reader) (extension *Extension, err error) {
	extension = new(Extension)

	err = scale.NewDecoder(reader).Decode(&extension.Affix)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecodeKey, err)
	}
	extension.Affix = nilIfEmpty(extension.Affix)

	extension.Pointer, err = decodePointer(reader)
	if err != nil {
		return nil, err
	}

	return extension, nil
}

func decodePointer(reader io.Reader) (pointer Pointer, err error) {
	encoded := make([]byte, pointerLength)
	_, err = io.ReadFull(reader, encoded)
	if err != nil {
		return pointer, fmt.Errorf("%w: %s", ErrReadPointer, err)
	}

	pointer.Kind = PointerKind(encoded[0])
	switch pointer.Kind {
	case LeafPointer, NodePointer:
	default:
		return pointer, fmt.Errorf("%w: %d", ErrUnknownPointerKind, encoded[0])
	}

	copy(pointer.Hash[:], encoded[1:])
	return pointer, nil
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
