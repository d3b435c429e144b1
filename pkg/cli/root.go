/*
Copyright © 2026 Cumulus Pipeline Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/config"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
)

const (
	name           = "cumulus-log"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the CLI with the process arguments. It is called by
// main.main and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Cumulus structured logging and Splunk query tool",
		Description: `Emit decorated JSON log records to the console and Splunk, query Splunk
for records previously ingested, build legacy key=value log lines, and
run an HTTP relay that does the first two for remote callers.

Splunk connection settings are read from flags or, when no --splunk-host
is given, from SPLUNK_HOST, SPLUNK_PORT, SPLUNK_USERNAME, SPLUNK_PASSWORD,
SPLUNK_INDEX and SPLUNK_LEVEL. A .env file in the working directory or
one of its parents is loaded first unless --env-file names another.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "diagnostics log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars(logging.LevelEnvVar),
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "path to a .env file (default: nearest .env in the working directory or its parents)",
				Sources: cli.EnvVars("CUMULUS_ENV_FILE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)

			path, err := config.LoadDotEnv(cmd.String("env-file"))
			if err != nil {
				return ctx, err
			}

			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel,
				"envFile", path)
			return ctx, nil
		},
		Commands: []*cli.Command{
			emitCmd(),
			queryCmd(),
			kvCmd(),
			serveCmd(),
		},
	}
}
