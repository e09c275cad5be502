// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package database

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const (
	tableSeparator = 0x00
	registryPrefix = "\x00tables\x00"
)

// Table is an opaque handle to a named table of an environment.
// All its keys are prefixed with the table name and a NUL separator.
// Obtain it with CreateTable or OpenTable.
type Table struct {
	name   string
	prefix []byte
}

func newTable(name string) Table {
	prefix := make([]byte, 0, len(name)+1)
	prefix = append(prefix, name...)
	prefix = append(prefix, tableSeparator)
	return Table{
		name:   name,
		prefix: prefix,
	}
}

// Name returns the name of the table.
func (t Table) Name() string {
	return t.name
}

// Prefix returns a copy of the key prefix of the table.
func (t Table) Prefix() (prefix []byte) {
	return bytes.Clone(t.prefix)
}

// Key returns the database key for the given table key.
func (t Table) Key(key []byte) (prefixedKey []byte) {
	return makePrefixedKey(t.prefix, key)
}

// TrimKey strips the table prefix from a database key.
func (t Table) TrimKey(prefixedKey []byte) (key []byte) {
	return bytes.Clone(prefixedKey[len(t.prefix):])
}

func makePrefixedKey(prefix, key []byte) (prefixedKey []byte) {
	// WARNING: Do not use:
	// return append(prefix, key...)
	// since the prefix might have a capacity larger than its length,
	// and that would produce data corruption on prefixed keys pointing
	// to the prefix underlying memory array.
	prefixedKey = make([]byte, 0, len(prefix)+len(key))
	prefixedKey = append(prefixedKey, prefix...)
	prefixedKey = append(prefixedKey, key...)
	return prefixedKey
}

var registryTable = Table{
	name:   "registry",
	prefix: []byte(registryPrefix),
}

func validateTableName(name string) (err error) {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidTableName)
	}
	if strings.IndexByte(name, tableSeparator) >= 0 {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidTableName, name)
	}
	return nil
}

// CreateTable creates the named table in the environment,
// using its own read-write transaction. If the table already
// exists, it is returned without error.
func CreateTable(env Environment, name string) (table Table, err error) {
	err = validateTableName(name)
	if err != nil {
		return Table{}, err
	}

	txn, err := env.NewReadWriteTxn()
	if err != nil {
		return Table{}, fmt.Errorf("creating read-write transaction: %w", err)
	}
	defer txn.Discard()

	_, err = txn.Get(registryTable, []byte(name))
	switch {
	case err == nil:
		return newTable(name), nil
	case !errors.Is(err, ErrKeyNotFound):
		return Table{}, fmt.Errorf("reading table registry: %w", err)
	}

	err = txn.Put(registryTable, []byte(name), []byte{1})
	if err != nil {
		return Table{}, fmt.Errorf("registering table %q: %w", name, err)
	}

	err = txn.Commit()
	if err != nil {
		return Table{}, fmt.Errorf("committing table %q creation: %w", name, err)
	}

	return newTable(name), nil
}

// OpenTable opens the named table, which must have been created
// previously with CreateTable. It returns the wrapped error
// ErrTableNotFound if the table does not exist.
func OpenTable(env Environment, name string) (table Table, err error) {
	err = validateTableName(name)
	if err != nil {
		return Table{}, err
	}

	txn, err := env.NewReadTxn()
	if err != nil {
		return Table{}, fmt.Errorf("creating read transaction: %w", err)
	}
	defer txn.Discard()

	_, err = txn.Get(registryTable, []byte(name))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		return Table{}, fmt.Errorf("reading table registry: %w", err)
	}

	return newTable(name), nil
}
