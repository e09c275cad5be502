// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package databasetest contains behaviour tests shared by all
// the database environment implementations.
package databasetest

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewEnvironmentFunc returns a new empty environment. The environment
// is closed by the caller of the function.
type NewEnvironmentFunc func(t *testing.T) database.Environment

// RunEnvironmentTests runs the environment behaviour tests
// against environments created with newEnv.
func RunEnvironmentTests(t *testing.T, newEnv NewEnvironmentFunc) {
	t.Helper()

	tests := map[string]func(t *testing.T, env database.Environment){
		"put and get":                    testPutGet,
		"key not found":                  testKeyNotFound,
		"delete":                         testDelete,
		"discard leaves database as is":  testDiscard,
		"no implicit commit":             testNoImplicitCommit,
		"read snapshot isolation":        testReadSnapshotIsolation,
		"read own writes":                testReadOwnWrites,
		"iterate in key order":           testIterateOrder,
		"iterate stops on error":         testIterateStopsOnError,
		"tables are isolated":            testTablesIsolated,
		"table create and open":          testTableCreateOpen,
		"transaction done":               testTxnDone,
		"single writer":                  testSingleWriter,
		"value is copied":                testValueCopied,
		"closed environment":             testClosed,
		"large transaction":              testLargeTxn,
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			env := newEnv(t)
			test(t, env)
		})
	}
}

func createTable(t *testing.T, env database.Environment, name string) database.Table {
	t.Helper()
	table, err := database.CreateTable(env, name)
	require.NoError(t, err)
	return table
}

func put(t *testing.T, env database.Environment, table database.Table, keyValues ...[]byte) {
	t.Helper()
	require.Zero(t, len(keyValues)%2, "key values must come in pairs")

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	for i := 0; i < len(keyValues); i += 2 {
		err = txn.Put(table, keyValues[i], keyValues[i+1])
		require.NoError(t, err)
	}
	err = txn.Commit()
	require.NoError(t, err)
}

func assertValue(t *testing.T, env database.Environment, table database.Table,
	key, expectedValue []byte) {
	t.Helper()

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	value, err := txn.Get(table, key)
	require.NoError(t, err)
	assert.Equal(t, expectedValue, value)
}

func assertNotFound(t *testing.T, env database.Environment, table database.Table, key []byte) {
	t.Helper()

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	_, err = txn.Get(table, key)
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func testPutGet(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	put(t, env, table, []byte{1}, []byte{1, 2, 3})
	assertValue(t, env, table, []byte{1}, []byte{1, 2, 3})

	put(t, env, table, []byte{1}, []byte{4})
	assertValue(t, env, table, []byte{1}, []byte{4})
}

func testKeyNotFound(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	_, err = txn.Get(table, []byte{0xab})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
	assert.EqualError(t, err, "key not found: 0xab")
}

func testDelete(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")
	put(t, env, table, []byte{1}, []byte{1}, []byte{2}, []byte{2})

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Delete(table, []byte{1})
	require.NoError(t, err)
	err = txn.Delete(table, []byte{3})
	require.NoError(t, err)
	err = txn.Commit()
	require.NoError(t, err)

	assertNotFound(t, env, table, []byte{1})
	assertValue(t, env, table, []byte{2}, []byte{2})
}

func testDiscard(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")
	put(t, env, table, []byte{1}, []byte{1})

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Put(table, []byte{1}, []byte{9})
	require.NoError(t, err)
	err = txn.Put(table, []byte{2}, []byte{2})
	require.NoError(t, err)
	txn.Discard()

	assertValue(t, env, table, []byte{1}, []byte{1})
	assertNotFound(t, env, table, []byte{2})
}

func testNoImplicitCommit(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Put(table, []byte{1}, []byte{1})
	require.NoError(t, err)

	assertNotFound(t, env, table, []byte{1})

	txn.Discard()
	assertNotFound(t, env, table, []byte{1})
}

func testReadSnapshotIsolation(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")
	put(t, env, table, []byte{1}, []byte{1})

	readTxn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer readTxn.Discard()

	put(t, env, table, []byte{1}, []byte{2}, []byte{2}, []byte{2})

	value, err := readTxn.Get(table, []byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, value)

	_, err = readTxn.Get(table, []byte{2})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	assertValue(t, env, table, []byte{1}, []byte{2})
}

func testReadOwnWrites(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	defer txn.Discard()

	err = txn.Put(table, []byte{1}, []byte{1})
	require.NoError(t, err)

	value, err := txn.Get(table, []byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, value)

	err = txn.Delete(table, []byte{1})
	require.NoError(t, err)

	_, err = txn.Get(table, []byte{1})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func testIterateOrder(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")
	put(t, env, table,
		[]byte{3}, []byte{30},
		[]byte{1}, []byte{10},
		[]byte{2, 1}, []byte{21},
		[]byte{2}, []byte{20},
	)

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	var keys, values [][]byte
	err = txn.Iterate(table, func(key, value []byte) error {
		keys = append(keys, key)
		values = append(values, value)
		return nil
	})
	require.NoError(t, err)

	expectedKeys := [][]byte{{1}, {2}, {2, 1}, {3}}
	expectedValues := [][]byte{{10}, {20}, {21}, {30}}
	assert.Equal(t, expectedKeys, keys)
	assert.Equal(t, expectedValues, values)
}

func testIterateStopsOnError(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")
	put(t, env, table, []byte{1}, []byte{1}, []byte{2}, []byte{2})

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	errTest := errors.New("test error")
	calls := 0
	err = txn.Iterate(table, func(key, value []byte) error {
		calls++
		return errTest
	})
	assert.ErrorIs(t, err, errTest)
	assert.Equal(t, 1, calls)
}

func testTablesIsolated(t *testing.T, env database.Environment) {
	tableA := createTable(t, env, "a")
	tableAB := createTable(t, env, "ab")

	put(t, env, tableA, []byte{1}, []byte{0xa})
	put(t, env, tableAB, []byte{1}, []byte{0xb})

	assertValue(t, env, tableA, []byte{1}, []byte{0xa})
	assertValue(t, env, tableAB, []byte{1}, []byte{0xb})

	txn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer txn.Discard()

	count := 0
	err = txn.Iterate(tableA, func(key, value []byte) error {
		count++
		assert.Equal(t, []byte{0xa}, value)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testTableCreateOpen(t *testing.T, env database.Environment) {
	_, err := database.OpenTable(env, "test")
	assert.ErrorIs(t, err, database.ErrTableNotFound)

	table := createTable(t, env, "test")
	put(t, env, table, []byte{1}, []byte{1})

	again := createTable(t, env, "test")
	assert.Equal(t, table, again)
	assertValue(t, env, again, []byte{1}, []byte{1})

	opened, err := database.OpenTable(env, "test")
	require.NoError(t, err)
	assert.Equal(t, table, opened)

	_, err = database.CreateTable(env, "")
	assert.ErrorIs(t, err, database.ErrInvalidTableName)
	_, err = database.CreateTable(env, "bad\x00name")
	assert.ErrorIs(t, err, database.ErrInvalidTableName)
}

func testTxnDone(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Put(table, []byte{1}, []byte{1})
	require.NoError(t, err)
	err = txn.Commit()
	require.NoError(t, err)

	// Discard after commit is a no-op.
	txn.Discard()
	assertValue(t, env, table, []byte{1}, []byte{1})

	err = txn.Commit()
	assert.ErrorIs(t, err, database.ErrTxnDone)
	err = txn.Put(table, []byte{2}, []byte{2})
	assert.ErrorIs(t, err, database.ErrTxnDone)
	_, err = txn.Get(table, []byte{1})
	assert.ErrorIs(t, err, database.ErrTxnDone)

	txn, err = env.NewReadWriteTxn()
	require.NoError(t, err)
	txn.Discard()
	err = txn.Commit()
	assert.ErrorIs(t, err, database.ErrTxnDone)

	readTxn, err := env.NewReadTxn()
	require.NoError(t, err)
	err = readTxn.Commit()
	require.NoError(t, err)
	err = readTxn.Iterate(table, func(key, _ []byte) error { return nil })
	assert.ErrorIs(t, err, database.ErrTxnDone)
}

func testSingleWriter(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	first, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = first.Put(table, []byte{1}, []byte{1})
	require.NoError(t, err)

	acquired := make(chan database.ReadWriteTxn)
	go func() {
		second, err := env.NewReadWriteTxn()
		if err != nil {
			close(acquired)
			return
		}
		acquired <- second
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired while first writer is open")
	case <-time.After(50 * time.Millisecond):
	}

	// Readers are not blocked by the writer.
	assertNotFound(t, env, table, []byte{1})

	err = first.Commit()
	require.NoError(t, err)

	select {
	case second, ok := <-acquired:
		require.True(t, ok)
		value, err := second.Get(table, []byte{1})
		require.NoError(t, err)
		assert.Equal(t, []byte{1}, value)
		second.Discard()
	case <-time.After(5 * time.Second):
		t.Fatal("second writer not acquired after first writer committed")
	}
}

func testValueCopied(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	value := []byte{1, 2}
	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Put(table, []byte{1}, value)
	require.NoError(t, err)
	value[0] = 9
	err = txn.Commit()
	require.NoError(t, err)

	assertValue(t, env, table, []byte{1}, []byte{1, 2})
}

func testClosed(t *testing.T, env database.Environment) {
	err := env.Close()
	require.NoError(t, err)

	_, err = env.NewReadTxn()
	assert.ErrorIs(t, err, database.ErrClosed)
	_, err = env.NewReadWriteTxn()
	assert.ErrorIs(t, err, database.ErrClosed)
}

func testLargeTxn(t *testing.T, env database.Environment) {
	table := createTable(t, env, "test")

	// About 11MiB of keys and values, above the transaction size
	// limit of a badger database with a 64MiB memtable.
	const entries = 70000
	value := make([]byte, 128)

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	for i := 0; i < entries; i++ {
		key := make([]byte, 32)
		binary.BigEndian.PutUint32(key, uint32(i))
		err = txn.Put(table, key, value)
		require.NoError(t, err)
	}
	err = txn.Commit()
	require.NoError(t, err)

	readTxn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer readTxn.Discard()

	count := 0
	err = readTxn.Iterate(table, func(key, _ []byte) error {
		require.Equal(t, uint32(count), binary.BigEndian.Uint32(key))
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, entries, count)
}
