// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pebble

import (
	"testing"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/internal/database/databasetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Environment(t *testing.T) {
	t.Parallel()

	databasetest.RunEnvironmentTests(t, func(t *testing.T) database.Environment {
		env, err := New(Settings{InMemory: true})
		require.NoError(t, err)
		t.Cleanup(func() {
			err := env.Close()
			require.NoError(t, err)
		})
		return env
	})
}

func Test_Environment_persistence(t *testing.T) {
	t.Parallel()

	path := t.TempDir()

	env, err := New(Settings{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, env.Path())

	table, err := database.CreateTable(env, "test")
	require.NoError(t, err)

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Put(table, []byte{1}, []byte{1})
	require.NoError(t, err)
	err = txn.Commit()
	require.NoError(t, err)

	txn, err = env.NewReadWriteTxn()
	require.NoError(t, err)
	err = txn.Put(table, []byte{2}, []byte{2})
	require.NoError(t, err)
	txn.Discard()

	err = env.Close()
	require.NoError(t, err)

	env, err = New(Settings{Path: path})
	require.NoError(t, err)
	defer func() {
		err := env.Close()
		require.NoError(t, err)
	}()

	table, err = database.OpenTable(env, "test")
	require.NoError(t, err)

	readTxn, err := env.NewReadTxn()
	require.NoError(t, err)
	defer readTxn.Discard()

	value, err := readTxn.Get(table, []byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, value)

	_, err = readTxn.Get(table, []byte{2})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func Test_Settings_Validate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		settings   Settings
		errWrapped error
		errMessage string
	}{
		"on disk": {
			settings: Settings{Path: "x"},
		},
		"in memory": {
			settings: Settings{InMemory: true},
		},
		"path set in memory": {
			settings:   Settings{Path: "x", InMemory: true},
			errWrapped: ErrPathSetInMemory,
			errMessage: "path cannot be set for an in-memory database: x",
		},
		"path not set on disk": {
			errWrapped: ErrPathNotSet,
			errMessage: "path must be set for an on-disk database",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := testCase.settings.Validate()

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errMessage == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, testCase.errMessage)
			}
		})
	}
}

func Test_keyUpperBound(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		prefix     []byte
		upperBound []byte
	}{
		"empty": {},
		"simple": {
			prefix:     []byte("trie_store\x00"),
			upperBound: []byte("trie_store\x01"),
		},
		"carry": {
			prefix:     []byte{1, 0xff, 0xff},
			upperBound: []byte{2},
		},
		"all 0xff": {
			prefix: []byte{0xff, 0xff},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			upperBound := keyUpperBound(testCase.prefix)
			assert.Equal(t, testCase.upperBound, upperBound)
		})
	}
}
