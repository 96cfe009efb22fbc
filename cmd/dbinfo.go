// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"nhdbstats/server/internal/config"
	"nhdbstats/server/internal/dsn"
	"nhdbstats/server/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// dbinfoCmd shows which database nhdbstats would use, with the password masked.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the database connection in use",
	Long: `The dbinfo command displays the database connection nhdbstats resolves from
--dsn, NHDB_DSN / DATABASE_URL or the OS keychain, with credentials masked.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		connString, source, err := resolveDSN(cfg)
		if err != nil {
			pterm.Println("⚠️  No database connection configured")
			pterm.Println("   Set NHDB_DSN or run: nhdbstats connect")
			return nil
		}
		info, err := dsn.Parse(connString)
		if err != nil {
			return err
		}

		pterm.Printfln("Using DSN from %s", source)
		pterm.Println()
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(logging.Mask(connString))
		pterm.Println()

		table := pterm.TableData{
			{"Host", info.Host},
			{"Port", info.Port},
			{"Database", info.Database},
			{"User", info.User},
			{"Variant", cfg.Variant},
			{"Row limit", pterm.Sprint(cfg.RowLimit)},
		}
		if err := pterm.DefaultTable.WithData(table).Render(); err != nil {
			return err
		}
		pterm.Println()
		pterm.Println("To update this connection, run: nhdbstats connect")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
