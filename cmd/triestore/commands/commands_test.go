// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	cfg "github.com/ChainSafe/triestore/config"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/lib/utils"
	"github.com/ChainSafe/triestore/pkg/trie/node"
	"github.com/ChainSafe/triestore/pkg/trie/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand runs the root command with the arguments given and
// returns its standard output. Commands share the global viper
// instance so tests using it cannot run in parallel.
func runCommand(t *testing.T, args ...string) (output string, err error) {
	t.Helper()

	viper.Reset()
	cmd, err := NewRootCommand()
	require.NoError(t, err)

	buffer := bytes.NewBuffer(nil)
	cmd.SetOut(buffer)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return buffer.String(), err
}

type fixture struct {
	rootHash   common.Hash
	orphanHash common.Hash
	// sizes are the encoding sizes of the retained and orphan nodes.
	retainedSize, orphanSize int
}

// writeFixture writes a root branch pointing to a leaf through the
// scratch trie store, and an orphan leaf directly to the trie store.
func writeFixture(t *testing.T, databaseConfig cfg.DatabaseConfig, basePath string) (f fixture) {
	t.Helper()

	env, err := utils.SetupDatabase(databaseConfig, basePath)
	require.NoError(t, err)
	defer func() {
		err := env.Close()
		require.NoError(t, err)
	}()

	trieStore, err := store.Open(env, databaseConfig.Name)
	require.NoError(t, err)

	leaf := &node.Leaf{Key: []byte("key"), Value: []byte("value")}
	leafEncoding, leafHash, err := node.EncodeAndHash(leaf)
	require.NoError(t, err)
	root := &node.Branch{
		PointerBlock: node.PointerBlock{
			'k': {Kind: node.LeafPointer, Hash: leafHash},
		},
	}
	rootEncoding, rootHash, err := node.EncodeAndHash(root)
	require.NoError(t, err)
	orphan := &node.Leaf{Key: []byte("old"), Value: []byte("value")}
	orphanEncoding, orphanHash, err := node.EncodeAndHash(orphan)
	require.NoError(t, err)

	scratch := store.NewScratchTrieStore(trieStore, env)
	err = scratch.Put(nil, leafHash, leaf)
	require.NoError(t, err)
	err = scratch.Put(nil, rootHash, root)
	require.NoError(t, err)
	err = scratch.WriteRootToDB(rootHash)
	require.NoError(t, err)

	txn, err := env.NewReadWriteTxn()
	require.NoError(t, err)
	err = trieStore.Put(txn, orphanHash, orphan)
	require.NoError(t, err)
	err = txn.Commit()
	require.NoError(t, err)

	return fixture{
		rootHash:     rootHash,
		orphanHash:   orphanHash,
		retainedSize: len(leafEncoding) + len(rootEncoding),
		orphanSize:   len(orphanEncoding),
	}
}

func Test_Commands(t *testing.T) {
	for _, engine := range []string{cfg.BadgerEngine, cfg.PebbleEngine} {
		engine := engine
		t.Run(engine, func(t *testing.T) {
			basePath := t.TempDir()
			commonArgs := []string{"--base-path", basePath, "--db-engine", engine,
				"--db-name", "state", "--log-level", "error"}

			args := append([]string{"init"}, commonArgs...)
			_, err := runCommand(t, args...)
			require.NoError(t, err)
			assert.True(t, utils.PathExists(filepath.Join(basePath, ConfigFileName)))

			databaseConfig := cfg.DatabaseConfig{Engine: engine, Name: "state"}
			f := writeFixture(t, databaseConfig, basePath)

			args = append([]string{"stats"}, commonArgs...)
			output, err := runCommand(t, args...)
			require.NoError(t, err)
			expected := fmt.Sprintf("Leaf: 2\nBranch: 1\nExtension: 0\nBytes: %d\n",
				f.retainedSize+f.orphanSize)
			assert.Equal(t, expected, output)

			args = append([]string{"verify", "--root", f.rootHash.String()}, commonArgs...)
			output, err = runCommand(t, args...)
			require.NoError(t, err)
			assert.Equal(t, f.rootHash.String()+": 2 nodes\n", output)

			args = append([]string{"prune", "--root", f.rootHash.String(),
				"--bloom-size", "1", "--batch-size", "1"}, commonArgs...)
			output, err = runCommand(t, args...)
			require.NoError(t, err)
			assert.Equal(t, "pruned 1 nodes\n", output)

			args = append([]string{"stats"}, commonArgs...)
			output, err = runCommand(t, args...)
			require.NoError(t, err)
			expected = fmt.Sprintf("Leaf: 1\nBranch: 1\nExtension: 0\nBytes: %d\n",
				f.retainedSize)
			assert.Equal(t, expected, output)

			args = append([]string{"verify", "--root", f.orphanHash.String()}, commonArgs...)
			_, err = runCommand(t, args...)
			assert.ErrorIs(t, err, store.ErrNodeNotFound)
		})
	}
}

func Test_Commands_errors(t *testing.T) {
	basePath := t.TempDir()

	_, err := runCommand(t, "stats", "--base-path", basePath, "--db-engine", "lmdb")
	assert.ErrorContains(t, err, "validating config: validating fields: ")

	_, err = runCommand(t, "stats", "--base-path", basePath, "--log-level", "loud")
	assert.ErrorIs(t, err, cfg.ErrInvalidLogLevel)

	_, err = runCommand(t, "verify", "--base-path", basePath, "--root", "0x01")
	assert.ErrorIs(t, err, common.ErrHashLength)
	assert.EqualError(t, err, `parsing root "0x01": `+
		"hash has an invalid length: 1 bytes instead of 32")

	_, err = runCommand(t, "verify", "--base-path", basePath)
	assert.EqualError(t, err, `required flag(s) "root" not set`)

	_, err = runCommand(t, "stats", "--base-path", basePath, "--in-memory")
	assert.EqualError(t, err, "unknown flag: --in-memory")

	_, err = runCommand(t, "init", "--base-path", basePath, "--db-engine", cfg.MemoryEngine)
	assert.ErrorIs(t, err, ErrDatabaseNotPersistent)
	assert.EqualError(t, err, "database is not persistent: memory engine")
	assert.False(t, utils.PathExists(filepath.Join(basePath, ConfigFileName)))
}

func Test_ParseConfig_inMemory(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("database.engine", cfg.PebbleEngine)
	viper.Set("database.in-memory", true)

	_, err := ParseConfig()

	assert.ErrorIs(t, err, ErrDatabaseNotPersistent)
	assert.EqualError(t, err, "database is not persistent: in-memory pebble database")
}

func Test_execInit_existingConfig(t *testing.T) {
	basePath := t.TempDir()
	args := []string{"init", "--base-path", basePath, "--db-engine", cfg.PebbleEngine,
		"--db-name", "first", "--log-level", "error"}

	_, err := runCommand(t, args...)
	require.NoError(t, err)

	readConfig := func() *cfg.Config {
		written := cfg.Default()
		v := viper.New()
		v.SetConfigFile(filepath.Join(basePath, ConfigFileName))
		require.NoError(t, v.ReadInConfig())
		require.NoError(t, v.Unmarshal(written))
		return written
	}

	// A second init without --force leaves the configuration untouched.
	args[6] = "second"
	_, err = runCommand(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "first", readConfig().Database.Name)

	args = append(args, "--force")
	_, err = runCommand(t, args...)
	require.NoError(t, err)
	written := readConfig()
	assert.Equal(t, cfg.PebbleEngine, written.Database.Engine)
	assert.Equal(t, "second", written.Database.Name)
}

func Test_parseRoots(t *testing.T) {
	t.Parallel()

	hash := common.Hash{1}
	roots, err := parseRoots([]string{hash.String()})
	require.NoError(t, err)
	assert.Equal(t, []common.Hash{hash}, roots)

	_, err = parseRoots([]string{"01"})
	assert.ErrorIs(t, err, common.ErrNoPrefix)
}
