// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/triestore/internal/database"
	badger "github.com/dgraph-io/badger/v4"
)

var (
	_ database.ReadTxn      = (*readTxn)(nil)
	_ database.ReadWriteTxn = (*readWriteTxn)(nil)
)

type readTxn struct {
	badgerTxn *badger.Txn
	done      bool
}

// Get retrieves a value from the table using the given key.
// It returns the wrapped error `database.ErrKeyNotFound` if the
// key is not found.
func (t *readTxn) Get(table database.Table, key []byte) (value []byte, err error) {
	if t.done {
		return nil, fmt.Errorf("%w", database.ErrTxnDone)
	}

	item, err := t.badgerTxn.Get(table.Key(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("getting item from transaction: %w", transformError(err))
	}

	value, err = item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("copying value: %w", err)
	}

	return value, nil
}

// Iterate iterates over all the key values of the table in ascending order.
func (t *readTxn) Iterate(table database.Table, fn func(key, value []byte) error) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	iteratorOptions := badger.DefaultIteratorOptions
	iteratorOptions.Prefix = table.Prefix()
	iterator := t.badgerTxn.NewIterator(iteratorOptions)
	defer iterator.Close()

	for iterator.Rewind(); iterator.Valid(); iterator.Next() {
		item := iterator.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("copying value: %w", err)
		}

		err = fn(table.TrimKey(item.Key()), value)
		if err != nil {
			return err
		}
	}

	return nil
}

// Commit releases the read snapshot.
func (t *readTxn) Commit() (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	t.Discard()
	return nil
}

// Discard releases the read snapshot.
func (t *readTxn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.badgerTxn.Discard()
}

type readWriteTxn struct {
	readTxn
	release func()
}

// Put sets a value at the given key in the table.
func (t *readWriteTxn) Put(table database.Table, key, value []byte) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	// badger requires the value to be left untouched until commit.
	err = t.badgerTxn.Set(table.Key(key), bytes.Clone(value))
	if err != nil {
		return fmt.Errorf("setting 0x%x: %w", key, transformError(err))
	}
	return nil
}

// Delete deletes the given key from the table.
// If the key is not found, no error is returned.
func (t *readWriteTxn) Delete(table database.Table, key []byte) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	err = t.badgerTxn.Delete(table.Key(key))
	if err != nil {
		return fmt.Errorf("deleting 0x%x: %w", key, transformError(err))
	}
	return nil
}

// Commit atomically persists all the writes of the transaction,
// and releases the writer lock of the environment.
func (t *readWriteTxn) Commit() (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	t.done = true
	defer t.release()

	err = t.badgerTxn.Commit()
	if err != nil {
		return fmt.Errorf("committing transaction: %w", transformError(err))
	}
	return nil
}

// Discard drops all the writes of the transaction,
// and releases the writer lock of the environment.
func (t *readWriteTxn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.badgerTxn.Discard()
	t.release()
}
