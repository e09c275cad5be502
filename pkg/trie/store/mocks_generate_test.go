// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package store

//go:generate mockgen -destination=mocks_test.go -package=$GOPACKAGE github.com/ChainSafe/triestore/internal/database Environment,ReadTxn,ReadWriteTxn
