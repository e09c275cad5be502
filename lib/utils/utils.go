// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package utils

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/triestore/config"
	"github.com/ChainSafe/triestore/internal/database"
	"github.com/ChainSafe/triestore/internal/database/badger"
	"github.com/ChainSafe/triestore/internal/database/memory"
	"github.com/ChainSafe/triestore/internal/database/pebble"
)

var ErrEngineNotSupported = errors.New("database engine not supported")

// SetupDatabase opens the database environment configured, storing
// its files in the database directory of basePath unless in memory.
func SetupDatabase(cfg config.DatabaseConfig, basePath string) (env database.Environment, err error) {
	dataDir := filepath.Join(basePath, config.DefaultDatabaseDir)

	switch cfg.Engine {
	case config.BadgerEngine:
		settings := badger.Settings{InMemory: &cfg.InMemory}
		if !cfg.InMemory {
			settings.Path = dataDir
		}
		env, err = badger.New(settings)
	case config.PebbleEngine:
		settings := pebble.Settings{InMemory: cfg.InMemory}
		if !cfg.InMemory {
			settings.Path = dataDir
		}
		env, err = pebble.New(settings)
	case config.MemoryEngine:
		env, err = memory.New()
	default:
		return nil, fmt.Errorf("%w: %s", ErrEngineNotSupported, cfg.Engine)
	}

	if err != nil {
		return nil, fmt.Errorf("creating %s database: %w", cfg.Engine, err)
	}
	return env, nil
}

// PathExists returns true if the named file or directory exists, otherwise false
func PathExists(p string) bool {
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// HomeDir returns the user's current HOME directory
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// ExpandDir expands a tilde prefix path to a full home path
func ExpandDir(targetPath string) string {
	if strings.HasPrefix(targetPath, "~\\") || strings.HasPrefix(targetPath, "~/") {
		if homeDir := HomeDir(); homeDir != "" {
			targetPath = homeDir + targetPath[1:]
		}
	} else if strings.HasPrefix(targetPath, ".\\") || strings.HasPrefix(targetPath, "./") {
		targetPath, _ = filepath.Abs(targetPath)
	}
	return path.Clean(os.ExpandEnv(targetPath))
}
