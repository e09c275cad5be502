// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"
	"io"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Encode encodes the leaf to the writer given.
// The encoding format is documented in the README.md of this package.
func (l *Leaf) Encode(writer io.Writer) (err error) {
	err = encodeHeader(LeafKind, writer)
	if err != nil {
		return fmt.Errorf("cannot encode header: %w", err)
	}

	encoder := scale.NewEncoder(writer)
	err = encoder.Encode(l.Key)
	if err != nil {
		return fmt.Errorf("scale encoding key: %w", err)
	}

	err = encoder.Encode(l.Value)
	if err != nil {
		return fmt.Errorf("scale encoding value: %w", err)
	}

	return nil
}

// Encode encodes the branch to the writer given.
// The encoding format is documented in the README.md of this package.
func (b *Branch) Encode(writer io.Writer) (err error) {
	err = encodeHeader(BranchKind, writer)
	if err != nil {
		return fmt.Errorf("cannot encode header: %w", err)
	}

	childrenBitmap := b.ChildrenBitmap()
	_, err = writer.Write(childrenBitmap[:])
	if err != nil {
		return fmt.Errorf("cannot write children bitmap: %w", err)
	}

	for i, pointer := range b.PointerBlock {
		if pointer == nil {
			continue
		}

		err = encodePointer(*pointer, writer)
		if err != nil {
			return fmt.Errorf("cannot encode pointer at slot %d: %w", i, err)
		}
	}

	return nil
}

// Encode encodes the extension to the writer given.
// The encoding format is documented in the README.md of this package.
func (e *Extension) Encode(writer io.Writer) (err error) {
	err = encodeHeader(ExtensionKind, writer)
	if err != nil {
		return fmt.Errorf("cannot encode header: %w", err)
	}

	err = scale.NewEncoder(writer).Encode(e.Affix)
	if err != nil {
		return fmt.Errorf("scale encoding affix: %w", err)
	}

	err = encodePointer(e.Pointer, writer)
	if err != nil {
		return fmt.Errorf("cannot encode pointer: %w", err)
	}

	return nil
}

func encodePointer(pointer Pointer, writer io.Writer) (err error) {
	switch pointer.Kind {
	case LeafPointer, NodePointer:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPointerKind, pointer.Kind)
	}

	encoded := make([]byte, 0, pointerLength)
	encoded = append(encoded, byte(pointer.Kind))
	encoded = append(encoded, pointer.Hash[:]...)
	_, err = writer.Write(encoded)
	return err
}
