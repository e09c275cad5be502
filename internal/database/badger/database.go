// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badger provides a transactional environment using badger v4.
package badger

import (
	"fmt"
	"sync"

	"github.com/ChainSafe/triestore/internal/database"
	badger "github.com/dgraph-io/badger/v4"
)

var _ database.Environment = (*Environment)(nil)

// Environment is a transaction source backed by a badger/v4 database.
type Environment struct {
	badgerDatabase *badger.DB
	// writer serialises read-write transactions. It is locked
	// when one is created and unlocked once it is committed or discarded.
	writer      sync.Mutex
	closedMutex sync.RWMutex
	closed      bool
}

// New returns a new environment based on a badger v4 database.
func New(settings Settings) (env *Environment, err error) {
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	badgerOptions := badger.DefaultOptions(settings.Path)
	badgerOptions = badgerOptions.WithLogger(nil)
	badgerOptions = badgerOptions.WithInMemory(*settings.InMemory)
	badgerOptions = badgerOptions.WithSyncWrites(!*settings.InMemory)
	badgerOptions = badgerOptions.WithMemTableSize(settings.MemTableSize)
	badgerDatabase, err := badger.Open(badgerOptions)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Environment{
		badgerDatabase: badgerDatabase,
	}, nil
}

// NewReadTxn returns a new read only transaction on a snapshot
// of the database.
func (e *Environment) NewReadTxn() (txn database.ReadTxn, err error) {
	e.closedMutex.RLock()
	defer e.closedMutex.RUnlock()
	if e.closed {
		return nil, fmt.Errorf("%w", database.ErrClosed)
	}

	return &readTxn{
		badgerTxn: e.badgerDatabase.NewTransaction(false),
	}, nil
}

// NewReadWriteTxn returns a new read-write transaction, blocking
// until any other read-write transaction is committed or discarded.
func (e *Environment) NewReadWriteTxn() (txn database.ReadWriteTxn, err error) {
	e.writer.Lock()

	e.closedMutex.RLock()
	defer e.closedMutex.RUnlock()
	if e.closed {
		e.writer.Unlock()
		return nil, fmt.Errorf("%w", database.ErrClosed)
	}

	return &readWriteTxn{
		readTxn: readTxn{
			badgerTxn: e.badgerDatabase.NewTransaction(true),
		},
		release: e.writer.Unlock,
	}, nil
}

// Close closes the database. All transactions must
// be committed or discarded before calling Close.
func (e *Environment) Close() (err error) {
	e.closedMutex.Lock()
	defer e.closedMutex.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	err = e.badgerDatabase.Close()
	return transformError(err)
}
