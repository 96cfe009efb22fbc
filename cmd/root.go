// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for nhdbstats.
// It implements the HTTP service (serve), one-off queries (query) and the
// database connection helpers (connect, dbinfo) using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"nhdbstats/server/internal/config"
	"nhdbstats/server/internal/dsn"
	"nhdbstats/server/internal/keychain"

	"github.com/spf13/cobra"
)

var dsnFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "nhdbstats",
	Short:         "JSON API over the NetHack ascended games database",
	Long:          `nhdbstats serves ascended games from the v_ascended view of a PostgreSQL database as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "PostgreSQL connection string (overrides NHDB_DSN and the keychain)")
}

// dsnSource describes where a DSN was found.
type dsnSource string

const (
	sourceFlag     dsnSource = "--dsn flag"
	sourceEnv      dsnSource = "environment"
	sourceKeychain dsnSource = "OS keychain"
)

// resolveDSN picks the DSN from the flag, then the environment, then the OS
// keychain, and validates it with pgx.
func resolveDSN(cfg config.Config) (string, dsnSource, error) {
	raw, source := strings.TrimSpace(dsnFlag), sourceFlag
	if raw == "" {
		raw, source = strings.TrimSpace(cfg.DSN), sourceEnv
	}
	if raw == "" {
		km, err := keychain.GetManager()
		if err != nil {
			return "", "", fmt.Errorf("no DSN configured and secure storage is unavailable: %w", err)
		}
		raw, err = km.LoadDBDSN()
		if err != nil {
			return "", "", fmt.Errorf("no DSN configured: set NHDB_DSN or run 'nhdbstats connect': %w", err)
		}
		source = sourceKeychain
	}

	connString, err := dsn.Resolve(raw)
	if err != nil {
		return "", "", err
	}
	return connString, source, nil
}
