// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/triestore/pkg/trie/node"
	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count the stored trie nodes per kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execStats(cmd)
		},
	}
}

// execStats executes the stats command
func execStats(cmd *cobra.Command) (err error) {
	env, trieStore, err := openTrieStore()
	if err != nil {
		return err
	}
	defer closeEnvironment(env)

	txn, err := env.NewReadTxn()
	if err != nil {
		return fmt.Errorf("creating read transaction: %w", err)
	}
	defer txn.Discard()

	counts := make(map[node.Kind]int, 3)
	var size int
	err = txn.Iterate(trieStore.Table(), func(key, value []byte) error {
		n, err := node.DecodeBytes(value)
		if err != nil {
			return fmt.Errorf("decoding node 0x%x: %w", key, err)
		}
		counts[n.Kind()]++
		size += len(value)
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterating trie store: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, kind := range []node.Kind{node.LeafKind, node.BranchKind, node.ExtensionKind} {
		_, err = fmt.Fprintf(out, "%s: %d\n", kind, counts[kind])
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	_, err = fmt.Fprintf(out, "Bytes: %d\n", size)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
