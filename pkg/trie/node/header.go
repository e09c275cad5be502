// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"
	"io"
)

const (
	leafHeader      byte = 1 // 01
	branchHeader    byte = 2 // 10
	extensionHeader byte = 3 // 11
)

const (
	nodeHeaderShift = 6
	headerLowBits   = 0x3f
)

// encodeHeader writes the header byte for the node kind.
func encodeHeader(kind Kind, writer io.Writer) (err error) {
	var header byte
	switch kind {
	case LeafKind:
		header = leafHeader
	case BranchKind:
		header = branchHeader
	case ExtensionKind:
		header = extensionHeader
	default:
		panic(fmt.Sprintf("node kind %d not supported", kind))
	}
	header <<= nodeHeaderShift

	_, err = writer.Write([]byte{header})
	return err
}

// decodeHeader reads the header byte and returns the node kind.
func decodeHeader(reader io.Reader) (kind Kind, err error) {
	headerByte := make([]byte, 1)
	_, err = io.ReadFull(reader, headerByte)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrReadHeaderByte, err)
	}
	header := headerByte[0]

	if header&headerLowBits != 0 {
		return 0, fmt.Errorf("%w: header byte 0x%02x", ErrUnknownNodeKind, header)
	}

	switch header >> nodeHeaderShift {
	case leafHeader:
		return LeafKind, nil
	case branchHeader:
		return BranchKind, nil
	case extensionHeader:
		return ExtensionKind, nil
	default:
		return 0, fmt.Errorf("%w: header byte 0x%02x", ErrUnknownNodeKind, header)
	}
}
