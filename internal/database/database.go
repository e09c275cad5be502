// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package database defines the minimal transactional key-value engine
// contract the trie stores are built on, and the named table registry
// shared by all engine implementations.
package database

import (
	"errors"
	"io"
)

var (
	// ErrKeyNotFound is returned when a key is not found in a table.
	ErrKeyNotFound = errors.New("key not found")
	// ErrClosed is returned when the environment is used after being closed.
	ErrClosed = errors.New("database closed")
	// ErrTxnDone is returned when a transaction is used after it
	// was committed or discarded.
	ErrTxnDone = errors.New("transaction already committed or discarded")
	// ErrTableNotFound is returned when opening a table which was never created.
	ErrTableNotFound = errors.New("table not found")
	// ErrInvalidTableName is returned for empty table names or
	// table names containing a NUL byte.
	ErrInvalidTableName = errors.New("invalid table name")
)

// ReadTxn is a read only snapshot view of the database.
// It must be released with Commit or Discard.
type ReadTxn interface {
	// Get returns the value stored at the key in the table.
	// It returns the wrapped error ErrKeyNotFound if the key is not found.
	Get(table Table, key []byte) (value []byte, err error)
	// Iterate calls fn for every key value pair of the table,
	// in ascending key order. Keys given to fn are stripped of
	// the table prefix. Iteration stops at the first error
	// returned by fn, and this error is returned.
	Iterate(table Table, fn func(key, value []byte) error) error
	// Commit ends the transaction. For read-write transactions,
	// it atomically persists all the writes made in the transaction.
	Commit() error
	// Discard ends the transaction without persisting anything.
	// It is a no-op if the transaction was already committed or discarded.
	Discard()
}

// ReadWriteTxn is a read-write transaction. Its writes are only
// visible to other transactions once Commit returns without error.
// A read-write transaction which is discarded, or never committed,
// leaves the database unchanged.
type ReadWriteTxn interface {
	ReadTxn
	Put(table Table, key, value []byte) error
	Delete(table Table, key []byte) error
}

// Environment is the source of transactions on a database.
// Only a single read-write transaction can be open at any time;
// NewReadWriteTxn blocks until the current one is committed or
// discarded. Read transactions see a consistent snapshot and
// never block, nor are blocked by, the writer.
type Environment interface {
	io.Closer
	NewReadTxn() (txn ReadTxn, err error)
	NewReadWriteTxn() (txn ReadWriteTxn, err error)
}
