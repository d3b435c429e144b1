/*
Copyright © 2026 Cumulus Pipeline Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
)

func emitCmd() *cli.Command {
	return &cli.Command{
		Name:                  "emit",
		EnableShellCompletion: true,
		Usage:                 "Emit one decorated log record",
		Description: `Emit a single record through a Cumulus logger. The record is decorated
with timestamp, collectionName, granuleId and level, then written to the
console and, when configured, forwarded to Splunk.

Handlers come from --config when given, otherwise from flags and the
SPLUNK_* environment. Records below INFO are never emitted.

# Examples

Console only:
  cumulus-log emit --message "sync complete" --collection MOD09GQ --granule g1

Structured record to console and Splunk:
  cumulus-log emit --level ERROR --field process=sync-granule --field error=timeout \
    --splunk-host splunk.example.com --splunk-user svc --splunk-pass secret`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "record message",
			},
			fieldFlag("record field"),
			&cli.StringFlag{
				Name:  "level",
				Usage: "record level (DEBUG, INFO, WARNING, ERROR, CRITICAL)",
				Value: "INFO",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "how long to wait for Splunk delivery",
				Value: defaults.CLIEmitTimeout,
			},
		}, loggerFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			level, err := logging.ParseLevel(cmd.String("level"))
			if err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}

			record, err := buildEmitRecord(cmd)
			if err != nil {
				return err
			}

			lc, err := loggerConfigFromCmd(cmd)
			if err != nil {
				return err
			}

			var (
				mu       sync.Mutex
				failures []error
			)
			reg := logging.NewRegistry(
				logging.WithConsoleWriter(stdout(cmd)),
				logging.WithSendErrorHandler(func(logger string, err error) {
					mu.Lock()
					defer mu.Unlock()
					failures = append(failures, fmt.Errorf("logger %s: %w", logger, err))
				}),
			)

			logger, err := reg.GetLogger(lc.Name, lc.Options()...)
			if err != nil {
				return fmt.Errorf("failed to configure logger %q: %w", lc.Name, err)
			}
			logger.Log(ctx, level, record)

			flushCtx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()
			if err := reg.Flush(flushCtx); err != nil {
				return fmt.Errorf("failed waiting for delivery: %w", err)
			}

			mu.Lock()
			defer mu.Unlock()
			return errors.Join(failures...)
		},
	}
}

// buildEmitRecord returns the message string alone, or a field map when
// --field is given.
func buildEmitRecord(cmd *cli.Command) (any, error) {
	pairs, err := parsePairs("field", cmd.StringSlice("field"))
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		if !cmd.IsSet("message") {
			return nil, errors.New("nothing to emit: set --message or --field")
		}
		return cmd.String("message"), nil
	}

	record := make(map[string]any, len(pairs)+1)
	for _, p := range pairs {
		record[p.key] = p.value
	}
	if cmd.IsSet("message") {
		record[logging.KeyMessage] = cmd.String("message")
	}
	return record, nil
}
