// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/triestore/internal/database"
	"github.com/dgraph-io/badger/v4"
)

// transformError transforms a badger error into a database error
// eventually, for errors defined in the parent database package.
func transformError(badgerErr error) (err error) {
	switch {
	case badgerErr == nil:
		return nil
	case errors.Is(badgerErr, badger.ErrDBClosed):
		return fmt.Errorf("%w", database.ErrClosed)
	case errors.Is(badgerErr, badger.ErrDiscardedTxn):
		return fmt.Errorf("%w", database.ErrTxnDone)
	}
	return badgerErr
}
