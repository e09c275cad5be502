// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"os"

	log "github.com/ChainSafe/log15"
	cfg "github.com/ChainSafe/triestore/config"
	"github.com/ChainSafe/triestore/internal/metrics"
	"github.com/ChainSafe/triestore/lib/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names shared by all the commands.
const (
	BasePathFlag = "base-path"
	LogLevelFlag = "log-level"
	EngineFlag   = "db-engine"
	NameFlag     = "db-name"
	MetricsFlag  = "metrics-address"
)

// ErrDatabaseNotPersistent is returned when the configured database does
// not outlive the command, since every command opens a new environment.
var ErrDatabaseNotPersistent = errors.New("database is not persistent")

var (
	config        = cfg.Default()
	logger        = log.New("pkg", "cmd")
	metricsServer *metrics.Server
)

// ParseConfig builds the configuration from the defaults, the
// configuration file and the command line flags read by viper.
// It rejects databases kept in memory only.
func ParseConfig() (*cfg.Config, error) {
	con := cfg.Default()

	err := viper.Unmarshal(con)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	con.BasePath = utils.ExpandDir(con.BasePath)

	err = con.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	switch {
	case con.Database.Engine == cfg.MemoryEngine:
		return nil, fmt.Errorf("%w: %s engine", ErrDatabaseNotPersistent, con.Database.Engine)
	case con.Database.InMemory:
		return nil, fmt.Errorf("%w: in-memory %s database", ErrDatabaseNotPersistent, con.Database.Engine)
	}

	return con, nil
}

// NewRootCommand creates the root command
func NewRootCommand() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "triestore",
		Short: "Inspect and maintain a content-addressed trie store",
		Long: `triestore operates on the trie nodes persisted in a database.
Usage:
	triestore init --base-path ~/.triestore --db-engine pebble
	triestore stats
	triestore verify --root 0x...
	triestore prune --root 0x... --root 0x...`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			config, err = ParseConfig()
			if err != nil {
				return err
			}

			setupLogger(config.LogLevel)

			if config.Metrics.Address != "" {
				metricsServer = metrics.NewServer(config.Metrics.Address)
				_, err = metricsServer.Start()
				if err != nil {
					return fmt.Errorf("starting metrics server: %w", err)
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) (err error) {
			if metricsServer == nil {
				return nil
			}
			err = metricsServer.Stop()
			metricsServer = nil
			return err
		},
	}

	if err := addRootFlags(cmd); err != nil {
		return nil, err
	}

	pruneCmd, err := newPruneCommand()
	if err != nil {
		return nil, err
	}
	cmd.AddCommand(newInitCommand(), newVerifyCommand(), newStatsCommand(), pruneCmd)

	return cmd, nil
}

// addRootFlags adds the root flags to the command
func addRootFlags(cmd *cobra.Command) error {
	defaults := cfg.Default()

	if err := addStringFlagBindViper(cmd,
		BasePathFlag,
		defaults.BasePath,
		"Data directory holding the database and the configuration file",
		"base-path"); err != nil {
		return fmt.Errorf("failed to add --%s flag: %s", BasePathFlag, err)
	}

	if err := addStringFlagBindViper(cmd,
		LogLevelFlag,
		defaults.LogLevel,
		"Log level: trace, debug, info, warn, error or crit",
		"log-level"); err != nil {
		return fmt.Errorf("failed to add --%s flag: %s", LogLevelFlag, err)
	}

	if err := addStringFlagBindViper(cmd,
		EngineFlag,
		defaults.Database.Engine,
		"Database engine: badger or pebble",
		"database.engine"); err != nil {
		return fmt.Errorf("failed to add --%s flag: %s", EngineFlag, err)
	}

	if err := addStringFlagBindViper(cmd,
		NameFlag,
		defaults.Database.Name,
		"Trie store name, using the table trie_store-<name> if set",
		"database.name"); err != nil {
		return fmt.Errorf("failed to add --%s flag: %s", NameFlag, err)
	}

	if err := addStringFlagBindViper(cmd,
		MetricsFlag,
		defaults.Metrics.Address,
		"Listening address of the prometheus metrics server, disabled if empty",
		"metrics.address"); err != nil {
		return fmt.Errorf("failed to add --%s flag: %s", MetricsFlag, err)
	}

	return nil
}

// setupLogger sets the root log handler, filtering records below the level given.
// The level is validated with the configuration.
func setupLogger(level string) {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		lvl = log.LvlInfo
	}
	handler := log.StreamHandler(os.Stdout, log.TerminalFormat())
	log.Root().SetHandler(log.LvlFilterHandler(lvl, handler))
}
