// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/lib/utils"
	"github.com/ChainSafe/triestore/pkg/trie/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addStringFlagBindViper adds a string flag to the given command and binds it to the given viper name
func addStringFlagBindViper(cmd *cobra.Command,
	name,
	defaultValue,
	usage,
	viperBindName string,
) error {
	cmd.PersistentFlags().String(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addIntFlagBindViper adds an int flag to the given command and binds it to the given viper name
func addIntFlagBindViper(
	cmd *cobra.Command,
	name string,
	defaultValue int,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Int(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addUint64FlagBindViper adds a uint64 flag to the given command and binds it to the given viper name
func addUint64FlagBindViper(
	cmd *cobra.Command,
	name string,
	defaultValue uint64,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint64(name, defaultValue, usage)
	return viper.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// parseRoots parses the 0x prefixed hexadecimal root hashes given.
func parseRoots(values []string) (roots []common.Hash, err error) {
	roots = make([]common.Hash, len(values))
	for i, value := range values {
		roots[i], err = common.HexToHash(value)
		if err != nil {
			return nil, fmt.Errorf("parsing root %q: %w", value, err)
		}
	}
	return roots, nil
}

// openTrieStore opens the configured database and its existing trie store.
// The environment returned must be closed by the caller.
func openTrieStore() (env database.Environment, trieStore *store.TrieStore, err error) {
	env, err = utils.SetupDatabase(config.Database, config.BasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up database: %w", err)
	}

	trieStore, err = store.Open(env, config.Database.Name)
	if err != nil {
		closeErr := env.Close()
		if closeErr != nil {
			logger.Error("closing database", "err", closeErr)
		}
		return nil, nil, err
	}

	return env, trieStore, nil
}

// closeEnvironment closes the environment and logs any error.
func closeEnvironment(env database.Environment) {
	err := env.Close()
	if err != nil {
		logger.Error("closing database", "err", err)
	}
}
