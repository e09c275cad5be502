// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memory provides an in-memory transactional environment
// based on hashicorp/go-memdb immutable radix trees.
package memory

import (
	"fmt"
	"sync"

	"github.com/ChainSafe/triestore/internal/database"
	memdb "github.com/hashicorp/go-memdb"
)

const (
	kvTable = "kv"
	idIndex = "id"
)

type keyValue struct {
	Key   string
	Value []byte
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		kvTable: {
			Name: kvTable,
			Indexes: map[string]*memdb.IndexSchema{
				idIndex: {
					Name:    idIndex,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Key"},
				},
			},
		},
	},
}

var _ database.Environment = (*Environment)(nil)

// Environment is an in-memory environment. Writers are serialised
// by go-memdb and readers operate on immutable snapshots.
type Environment struct {
	memDB       *memdb.MemDB
	closedMutex sync.RWMutex
	closed      bool
}

// New returns a new empty in-memory environment.
func New() (env *Environment, err error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("creating memdb: %w", err)
	}

	return &Environment{
		memDB: memDB,
	}, nil
}

// NewReadTxn returns a read only transaction on the current snapshot.
func (e *Environment) NewReadTxn() (txn database.ReadTxn, err error) {
	e.closedMutex.RLock()
	defer e.closedMutex.RUnlock()
	if e.closed {
		return nil, fmt.Errorf("%w", database.ErrClosed)
	}

	return &readTxn{
		memTxn: e.memDB.Txn(false),
	}, nil
}

// NewReadWriteTxn returns a read-write transaction, blocking
// until any other read-write transaction is committed or discarded.
func (e *Environment) NewReadWriteTxn() (txn database.ReadWriteTxn, err error) {
	e.closedMutex.RLock()
	closed := e.closed
	e.closedMutex.RUnlock()
	if closed {
		return nil, fmt.Errorf("%w", database.ErrClosed)
	}

	return &readWriteTxn{
		readTxn: readTxn{
			memTxn: e.memDB.Txn(true),
		},
	}, nil
}

// Close marks the environment as closed.
func (e *Environment) Close() (err error) {
	e.closedMutex.Lock()
	defer e.closedMutex.Unlock()
	e.closed = true
	return nil
}
