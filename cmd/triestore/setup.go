// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"strings"

	"github.com/ChainSafe/triestore/cmd/triestore/commands"
	"github.com/ChainSafe/triestore/lib/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configureCobraCmd configures the cobra command with the given environment prefix.
func configureCobraCmd(cmd *cobra.Command, envPrefix string) {
	cobra.OnInitialize(func() { initEnv(envPrefix) })
	cmd.PersistentPreRunE = concatCobraCmdFuncs(configureViper, cmd.PersistentPreRunE)
}

// initEnv sets to use ENV variables if set.
func initEnv(prefix string) {
	// env variables with TRIESTORE prefix (eg. TRIESTORE_BASE_PATH)
	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

type cobraCmdFunc func(cmd *cobra.Command, args []string) error

// concatCobraCmdFuncs concatenates the given cobra command functions into a single function.
func concatCobraCmdFuncs(fs ...cobraCmdFunc) cobraCmdFunc {
	return func(cmd *cobra.Command, args []string) error {
		for _, f := range fs {
			if f != nil {
				if err := f(cmd, args); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// configureViper sets up viper to read the config.toml file of the base path.
func configureViper(*cobra.Command, []string) error {
	basePath := utils.ExpandDir(viper.GetString(commands.BasePathFlag))
	viper.SetConfigName(strings.TrimSuffix(commands.ConfigFileName, ".toml"))
	viper.SetConfigType("toml")
	viper.AddConfigPath(basePath)

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	var notFoundErr viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFoundErr) {
		return err
	}

	return nil
}
