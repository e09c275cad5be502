// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package memory

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/triestore/internal/database"
	memdb "github.com/hashicorp/go-memdb"
)

var (
	_ database.ReadTxn      = (*readTxn)(nil)
	_ database.ReadWriteTxn = (*readWriteTxn)(nil)
)

type readTxn struct {
	memTxn *memdb.Txn
	done   bool
}

// Get returns a copy of the value stored at the key in the table.
func (t *readTxn) Get(table database.Table, key []byte) (value []byte, err error) {
	if t.done {
		return nil, fmt.Errorf("%w", database.ErrTxnDone)
	}

	raw, err := t.memTxn.First(kvTable, idIndex, string(table.Key(key)))
	if err != nil {
		return nil, fmt.Errorf("getting 0x%x: %w", key, err)
	} else if raw == nil {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}

	return bytes.Clone(raw.(*keyValue).Value), nil
}

// Iterate iterates over all the key values of the table in ascending order.
func (t *readTxn) Iterate(table database.Table, fn func(key, value []byte) error) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	iterator, err := t.memTxn.Get(kvTable, idIndex+"_prefix", string(table.Prefix()))
	if err != nil {
		return fmt.Errorf("creating iterator: %w", err)
	}

	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		kv := raw.(*keyValue)
		err = fn(table.TrimKey([]byte(kv.Key)), bytes.Clone(kv.Value))
		if err != nil {
			return err
		}
	}

	return nil
}

func (t *readTxn) Commit() (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	t.Discard()
	return nil
}

func (t *readTxn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.memTxn.Abort()
}

type readWriteTxn struct {
	readTxn
}

// Put sets a copy of the value at the given key in the table.
func (t *readWriteTxn) Put(table database.Table, key, value []byte) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	kv := &keyValue{
		Key:   string(table.Key(key)),
		Value: bytes.Clone(value),
	}
	err = t.memTxn.Insert(kvTable, kv)
	if err != nil {
		return fmt.Errorf("inserting 0x%x: %w", key, err)
	}
	return nil
}

// Delete deletes the given key from the table.
// If the key is not found, no error is returned.
func (t *readWriteTxn) Delete(table database.Table, key []byte) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	err = t.memTxn.Delete(kvTable, &keyValue{Key: string(table.Key(key))})
	if err != nil && !errors.Is(err, memdb.ErrNotFound) {
		return fmt.Errorf("deleting 0x%x: %w", key, err)
	}
	return nil
}

// Commit atomically publishes the writes of the transaction.
func (t *readWriteTxn) Commit() (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	t.done = true
	t.memTxn.Commit()
	return nil
}
