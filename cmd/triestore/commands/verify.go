// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/triestore/lib/common"
	"github.com/ChainSafe/triestore/pkg/trie/node"
	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify every node reachable from the given roots is stored",
		Long: `The verify command walks the trie of each root given and fails
if a reachable node is missing or cannot be decoded.
Example:
	triestore verify --root 0x0a... --root 0x0b...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execVerify(cmd)
		},
	}
	cmd.Flags().StringSlice("root", nil, "root hash to verify, can be repeated")
	_ = cmd.MarkFlagRequired("root")
	return cmd
}

// execVerify executes the verify command
func execVerify(cmd *cobra.Command) (err error) {
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

	txn, err := env.NewReadTxn()
	if err != nil {
		return fmt.Errorf("creating read transaction: %w", err)
	}
	defer txn.Discard()

	for _, root := range roots {
		nodes := 0
		err = trieStore.Walk(txn, root, func(common.Hash, node.Node) error {
			nodes++
			return nil
		})
		if err != nil {
			return fmt.Errorf("verifying root %s: %w", root, err)
		}

		logger.Debug("root verified", "root", root, "nodes", nodes)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes\n", root, nodes)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return nil
}
