// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/triestore/lib/utils"
	"github.com/ChainSafe/triestore/pkg/trie/store"
	"github.com/spf13/cobra"
)

// ConfigFileName is the name of the configuration file in the base path.
const ConfigFileName = "config.toml"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise the database and write the configuration file",
		Long: `The init command creates the trie store table in the configured database
and writes the effective configuration to config.toml in the base path.
Example:
	triestore init --db-engine pebble --db-name state`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execInit(cmd)
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing configuration file")
	return cmd
}

// execInit executes the init command
func execInit(cmd *cobra.Command) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get --force: %s", err)
	}

	configPath := filepath.Join(config.BasePath, ConfigFileName)
	if utils.PathExists(configPath) && !force {
		logger.Warn("exiting without reinitialising, use --force to overwrite",
			"config", configPath)
		return nil
	}

	err = os.MkdirAll(config.BasePath, 0700)
	if err != nil {
		return fmt.Errorf("creating base path: %w", err)
	}

	env, err := utils.SetupDatabase(config.Database, config.BasePath)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}
	defer closeEnvironment(env)

	trieStore, err := store.New(env, config.Database.Name)
	if err != nil {
		return err
	}

	err = config.WriteTOML(configPath)
	if err != nil {
		return err
	}

	logger.Info("trie store initialised",
		"table", trieStore.Table().Name(), "engine", config.Database.Engine,
		"config", configPath)
	return nil
}
