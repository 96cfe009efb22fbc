// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nhdbstats/server/internal/config"
	"nhdbstats/server/internal/logging"
	"nhdbstats/server/internal/server"
	"nhdbstats/server/internal/sqlexec"

	"github.com/spf13/cobra"
)

const healthInterval = 30 * time.Second

var (
	serveListen  string
	serveHealth  string
	serveVariant string
	serveLimit   int
	servePooled  bool
	serveTimeout time.Duration
)

// dbConnector is what serve needs from a connector: sessions for queries and
// a ping for health checks.
type dbConnector interface {
	sqlexec.Connector
	Ping(ctx context.Context) error
	Close()
}

func newConnector(ctx context.Context, dsn string, pooled bool) (dbConnector, error) {
	if pooled {
		pc, err := sqlexec.NewPoolConnector(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pc, nil
	}
	cc, err := sqlexec.NewConnConnector(dsn)
	if err != nil {
		return nil, err
	}
	return cc, nil
}

// serveCmd runs the HTTP API until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve /ascended and /realtime as JSON over HTTP",
	Long: `The serve command starts the HTTP API. Every request to /ascended or /realtime
runs one query against v_ascended and returns the rows as a JSON array.

Settings come from $XDG_CONFIG_HOME/nhdbstats/config.json, NHDB_* environment
variables and the flags below, in increasing priority.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyServeFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if err != nil {
			return err
		}

		dsn, source, err := resolveDSN(cfg)
		if err != nil {
			return err
		}
		logger.Info("using database", logger.Args(
			"dsn", logging.Mask(dsn),
			"source", string(source),
			"pooled", cfg.Pooled,
		))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		conn, err := newConnector(ctx, dsn, cfg.Pooled)
		if err != nil {
			return err
		}
		defer conn.Close()

		handler := server.NewHandler(sqlexec.New(conn), logger, server.Options{
			Variant:      cfg.Variant,
			RowLimit:     cfg.RowLimit,
			QueryTimeout: time.Duration(cfg.QueryTimeout),
		})

		if cfg.HealthAddr != "" {
			health := server.NewHealth(logger)
			go health.Watch(ctx, conn, healthInterval)
			go func() {
				if err := health.ListenAndServe(ctx, cfg.HealthAddr); err != nil {
					logger.Error("health server stopped", logger.Args("error", err.Error()))
					stop()
				}
			}()
		}

		err = server.New(cfg.ListenAddr, handler, logger).ListenAndServe(ctx)
		logger.Info("shut down")
		return err
	},
}

// applyServeFlags overrides cfg with flags the user set explicitly.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.ListenAddr = serveListen
	}
	if flags.Changed("health-addr") {
		cfg.HealthAddr = serveHealth
	}
	if flags.Changed("variant") {
		cfg.Variant = serveVariant
	}
	if flags.Changed("limit") {
		cfg.RowLimit = serveLimit
	}
	if flags.Changed("pooled") {
		cfg.Pooled = servePooled
	}
	if flags.Changed("query-timeout") {
		cfg.QueryTimeout = config.Duration(serveTimeout)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	defaults := config.Defaults()
	serveCmd.Flags().StringVar(&serveListen, "listen", defaults.ListenAddr, "HTTP listen address")
	serveCmd.Flags().StringVar(&serveHealth, "health-addr", "", "gRPC health listen address (disabled when empty)")
	serveCmd.Flags().StringVar(&serveVariant, "variant", defaults.Variant, "game variant to list")
	serveCmd.Flags().IntVar(&serveLimit, "limit", defaults.RowLimit, "maximum rows per response")
	serveCmd.Flags().BoolVar(&servePooled, "pooled", false, "reuse connections through a pool instead of connecting per request")
	serveCmd.Flags().DurationVar(&serveTimeout, "query-timeout", 0, "per-request database timeout (0 disables)")
}
