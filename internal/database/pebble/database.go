// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package pebble provides a transactional environment using
// cockroachdb pebble. Read transactions are pebble snapshots and
// the read-write transaction is an indexed batch.
package pebble

import (
	"fmt"
	"os"
	"sync"

	log "github.com/ChainSafe/log15"
	"github.com/ChainSafe/triestore/internal/database"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var logger = log.New("pkg", "database", "engine", "pebble")

// inMemoryDirname is the directory used within the in-memory file system.
const inMemoryDirname = "pebble"

var _ database.Environment = (*Environment)(nil)

// Environment is a transaction source backed by a pebble database.
type Environment struct {
	path   string
	db     *pebble.DB
	writer sync.Mutex

	closedMutex sync.RWMutex
	closed      bool
}

// New opens or creates a pebble database using the settings given.
func New(settings Settings) (env *Environment, err error) {
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	dirname := settings.Path
	opts := &pebble.Options{}
	if settings.InMemory {
		dirname = inMemoryDirname
		opts.FS = vfs.NewMem()
	} else {
		err = os.MkdirAll(settings.Path, os.ModePerm)
		if err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := pebble.Open(dirname, opts)
	if err != nil {
		return nil, fmt.Errorf("opening pebble db: %w", err)
	}

	logger.Debug("pebble database opened", "path", settings.Path, "inmemory", settings.InMemory)

	return &Environment{
		path: settings.Path,
		db:   db,
	}, nil
}

// Path returns the database directory path, which is empty
// for in-memory databases.
func (e *Environment) Path() string {
	return e.path
}

// NewReadTxn returns a read only transaction on a new database snapshot.
func (e *Environment) NewReadTxn() (txn database.ReadTxn, err error) {
	e.closedMutex.RLock()
	defer e.closedMutex.RUnlock()
	if e.closed {
		return nil, fmt.Errorf("%w", database.ErrClosed)
	}

	snapshot := e.db.NewSnapshot()
	return &readTxn{
		reader: snapshot,
		close:  snapshot.Close,
	}, nil
}

// NewReadWriteTxn returns a read-write transaction, blocking
// until any other read-write transaction is committed or discarded.
func (e *Environment) NewReadWriteTxn() (txn database.ReadWriteTxn, err error) {
	e.writer.Lock()

	e.closedMutex.RLock()
	defer e.closedMutex.RUnlock()
	if e.closed {
		e.writer.Unlock()
		return nil, fmt.Errorf("%w", database.ErrClosed)
	}

	batch := e.db.NewIndexedBatch()
	return &readWriteTxn{
		readTxn: readTxn{
			reader: batch,
			close:  batch.Close,
		},
		batch:   batch,
		release: e.writer.Unlock,
	}, nil
}

// Close flushes and closes the database. All transactions
// must be committed or discarded before calling Close.
func (e *Environment) Close() (err error) {
	e.closedMutex.Lock()
	defer e.closedMutex.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	err = e.db.Flush()
	if err != nil {
		_ = e.db.Close()
		return fmt.Errorf("flushing database: %w", err)
	}

	err = e.db.Close()
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
