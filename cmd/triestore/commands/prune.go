// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	cfg "github.com/ChainSafe/triestore/config"
	"github.com/ChainSafe/triestore/internal/pruner/offline"
	"github.com/spf13/cobra"
)

const (
	BloomSizeFlag = "bloom-size"
	BatchSizeFlag = "batch-size"
)

func newPruneCommand() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete the trie nodes not reachable from the given roots",
		Long: `The prune command deletes every trie node of the trie store which is
not reachable from one of the roots given. Nothing else may write to the
database while it runs.
Example:
	triestore prune --root 0x0a... --root 0x0b... --batch-size 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execPrune(cmd)
		},
	}
	cmd.Flags().StringSlice("root", nil, "root hash to retain, can be repeated")
	_ = cmd.MarkFlagRequired("root")

	if err := addUint64FlagBindViper(cmd,
		BloomSizeFlag,
		cfg.DefaultBloomSize,
		"Bloom filter size in megabytes",
		"pruner.bloom-size"); err != nil {
		return nil, fmt.Errorf("failed to add --%s flag: %s", BloomSizeFlag, err)
	}

	if err := addIntFlagBindViper(cmd,
		BatchSizeFlag,
		cfg.DefaultBatchSize,
		"Maximum number of deletions per database transaction",
		"pruner.batch-size"); err != nil {
		return nil, fmt.Errorf("failed to add --%s flag: %s", BatchSizeFlag, err)
	}

	return cmd, nil
}

// execPrune executes the prune command
func execPrune(cmd *cobra.Command) (err error) {
	rootValues, err := cmd.Flags().GetStringSlice("root")
	if err != nil {
		return fmt.Errorf("failed to get --root: %s", err)
	}

	roots, err := parseRoots(rootValues)
	if err != nil {
		return err
	}

	env, trieStore, err := openTrieStore()
	if err != nil {
		return err
	}
	defer closeEnvironment(env)

	pruner, err := offline.New(env, trieStore, offline.Config{
		BloomSize: config.Pruner.BloomSize,
		BatchSize: config.Pruner.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("creating offline pruner: %w", err)
	}

	logger.Info("offline pruner initialised", "roots", len(roots))

	err = pruner.SetBloomFilter(roots...)
	if err != nil {
		return fmt.Errorf("failed to set keys into bloom filter: %w", err)
	}

	pruned, err := pruner.Prune()
	if err != nil {
		return fmt.Errorf("failed to prune: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d nodes\n", pruned)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
