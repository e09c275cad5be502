// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/ChainSafe/log15"
	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

// Database engine names.
const (
	BadgerEngine = "badger"
	PebbleEngine = "pebble"
	MemoryEngine = "memory"
)

const (
	// DefaultDatabaseDir is the directory inside the base path where
	// the database contents are stored.
	DefaultDatabaseDir = "db"
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultBloomSize is the default pruner bloom filter size in megabytes.
	DefaultBloomSize uint64 = 256
	// DefaultBatchSize is the default number of deletions per pruning transaction.
	DefaultBatchSize = 1000
)

var ErrInvalidLogLevel = errors.New("invalid log level")

// Config is the configuration of the trie store tooling.
type Config struct {
	BasePath string         `mapstructure:"base-path" toml:"base-path" validate:"required"`
	LogLevel string         `mapstructure:"log-level" toml:"log-level"`
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Pruner   PrunerConfig   `mapstructure:"pruner" toml:"pruner"`
	Metrics  MetricsConfig  `mapstructure:"metrics" toml:"metrics"`
}

// DatabaseConfig is the database configuration.
type DatabaseConfig struct {
	// Engine is one of badger, pebble or memory.
	Engine string `mapstructure:"engine" toml:"engine" validate:"oneof=badger pebble memory"`
	// Name is the optional trie store name, giving the table
	// trie_store-<name> instead of trie_store.
	Name string `mapstructure:"name" toml:"name"`
	// InMemory keeps the badger or pebble database in memory only.
	InMemory bool `mapstructure:"in-memory" toml:"in-memory"`
}

// PrunerConfig is the offline pruner configuration.
type PrunerConfig struct {
	BloomSize uint64 `mapstructure:"bloom-size" toml:"bloom-size" validate:"gte=1"`
	BatchSize int    `mapstructure:"batch-size" toml:"batch-size" validate:"gte=1"`
}

// MetricsConfig is the prometheus metrics configuration.
type MetricsConfig struct {
	// Address is the listening address of the metrics server.
	// The server is disabled if it is empty.
	Address string `mapstructure:"address" toml:"address" validate:"omitempty,hostname_port"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BasePath: "~/.triestore",
		LogLevel: DefaultLogLevel,
		Database: DatabaseConfig{
			Engine: BadgerEngine,
		},
		Pruner: PrunerConfig{
			BloomSize: DefaultBloomSize,
			BatchSize: DefaultBatchSize,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() (err error) {
	err = validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("validating fields: %w", err)
	}

	_, err = log.LvlFromString(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}

// DatabasePath returns the directory holding the database files.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.BasePath, DefaultDatabaseDir)
}

// WriteTOML writes the configuration as TOML to the file at path.
func (c *Config) WriteTOML(path string) (err error) {
	raw, err := toml.Marshal(*c)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	err = os.WriteFile(path, raw, 0600)
	if err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	return nil
}
