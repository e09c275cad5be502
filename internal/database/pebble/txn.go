// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pebble

import (
	"errors"
	"fmt"
	"io"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/cockroachdb/pebble"
)

var (
	_ database.ReadTxn      = (*readTxn)(nil)
	_ database.ReadWriteTxn = (*readWriteTxn)(nil)
)

// reader is implemented by both *pebble.Snapshot and *pebble.Batch.
type reader interface {
	Get(key []byte) (value []byte, closer io.Closer, err error)
	NewIter(o *pebble.IterOptions) (*pebble.Iterator, error)
}

type readTxn struct {
	reader reader
	close  func() error
	done   bool
}

// Get returns a copy of the value stored at the key in the table.
func (t *readTxn) Get(table database.Table, key []byte) (value []byte, err error) {
	if t.done {
		return nil, fmt.Errorf("%w", database.ErrTxnDone)
	}

	pebbleValue, closer, err := t.reader.Get(table.Key(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("getting 0x%x from database: %w", key, err)
	}

	value = make([]byte, len(pebbleValue))
	copy(value, pebbleValue)

	err = closer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing after get: %w", err)
	}

	return value, nil
}

// Iterate iterates over all the key values of the table in ascending order.
func (t *readTxn) Iterate(table database.Table, fn func(key, value []byte) error) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	prefix := table.Prefix()
	iterator, err := t.reader.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return fmt.Errorf("creating iterator: %w", err)
	}

	for valid := iterator.First(); valid; valid = iterator.Next() {
		value := make([]byte, len(iterator.Value()))
		copy(value, iterator.Value())
		err = fn(table.TrimKey(iterator.Key()), value)
		if err != nil {
			_ = iterator.Close()
			return err
		}
	}

	err = iterator.Close()
	if err != nil {
		return fmt.Errorf("closing iterator: %w", err)
	}
	return nil
}

// Commit releases the snapshot of the read transaction.
func (t *readTxn) Commit() (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	t.done = true

	err = t.close()
	if err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	return nil
}

// Discard releases the snapshot of the read transaction.
func (t *readTxn) Discard() {
	if t.done {
		return
	}
	t.done = true

	err := t.close()
	if err != nil {
		logger.Error("closing transaction reader", "err", err)
	}
}

type readWriteTxn struct {
	readTxn
	batch   *pebble.Batch
	release func()
}

// Put sets a value at the given key in the table.
// The key and value are copied into the batch.
func (t *readWriteTxn) Put(table database.Table, key, value []byte) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	err = t.batch.Set(table.Key(key), value, nil)
	if err != nil {
		return fmt.Errorf("setting 0x%x to batch: %w", key, err)
	}
	return nil
}

// Delete deletes the given key from the table.
func (t *readWriteTxn) Delete(table database.Table, key []byte) (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}

	err = t.batch.Delete(table.Key(key), nil)
	if err != nil {
		return fmt.Errorf("deleting 0x%x in batch: %w", key, err)
	}
	return nil
}

// Commit atomically and durably applies the batch to the database.
func (t *readWriteTxn) Commit() (err error) {
	if t.done {
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	t.done = true
	defer t.release()

	err = t.batch.Commit(pebble.Sync)
	if err != nil {
		_ = t.batch.Close()
		return fmt.Errorf("committing batch: %w", err)
	}

	err = t.batch.Close()
	if err != nil {
		return fmt.Errorf("closing batch: %w", err)
	}
	return nil
}

// Discard drops the batch.
func (t *readWriteTxn) Discard() {
	if t.done {
		return
	}
	t.readTxn.Discard()
	t.release()
}

func keyUpperBound(prefix []byte) (upperBound []byte) {
	end := make([]byte, len(prefix))
	copy(end, prefix)

	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
