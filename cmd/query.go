package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"nhdbstats/server/internal/config"
	"nhdbstats/server/internal/logging"
	"nhdbstats/server/internal/server"
	"nhdbstats/server/internal/sqlexec"

	"github.com/spf13/cobra"
)

var (
	queryVariant string
	queryLimit   int
	queryPretty  bool
)

// queryCmd runs one of the fixed games queries and prints the JSON result.
var queryCmd = &cobra.Command{
	Use:       "query ascended|realtime",
	Short:     "Print the JSON for one games query",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{server.AscendedQuery.Name, server.RealtimeQuery.Name},
	RunE: func(cmd *cobra.Command, args []string) error {
		q, ok := server.QueryByName(args[0])
		if !ok {
			return fmt.Errorf("unknown query %q (want ascended or realtime)", args[0])
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("variant") {
			cfg.Variant = queryVariant
		}
		if cmd.Flags().Changed("limit") {
			cfg.RowLimit = queryLimit
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		dsn, _, err := resolveDSN(cfg)
		if err != nil {
			return err
		}
		conn, err := sqlexec.NewConnConnector(dsn)
		if err != nil {
			return err
		}

		out, err := sqlexec.New(conn).Execute(cmd.Context(), q.SQL, cfg.Variant, int64(cfg.RowLimit))
		if err != nil {
			logging.PresentQueryFault(cmd.ErrOrStderr(), err)
			return fmt.Errorf("%s query failed", q.Name)
		}

		if queryPretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(out), "", "  "); err != nil {
				return err
			}
			out = buf.String()
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	defaults := config.Defaults()
	queryCmd.Flags().StringVar(&queryVariant, "variant", defaults.Variant, "game variant to list")
	queryCmd.Flags().IntVar(&queryLimit, "limit", defaults.RowLimit, "maximum rows")
	queryCmd.Flags().BoolVar(&queryPretty, "pretty", false, "indent the JSON output")
}
