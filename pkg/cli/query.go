/*
Copyright © 2026 Cumulus Pipeline Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/splunk"
)

func queryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "query",
		EnableShellCompletion: true,
		Usage:                 "Search Splunk for ingested log records",
		Description: `Run a Splunk search over the configured index and print every matching
record. Each --filter adds a key="value" term; terms are combined in the
order given. Values are inserted into the search verbatim.

The results can be output in JSON, YAML, or table format.

# Examples

  cumulus-log query --filter granuleId=g1 --filter level=ERROR --format table`,
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "search term (format: key=value, can be repeated)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "search timeout",
				Value: defaults.CLIQueryTimeout,
			},
			outputFlag(),
			formatFlag(),
		}, splunkFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			pairs, err := parsePairs("filter", cmd.StringSlice("filter"))
			if err != nil {
				return err
			}
			filters := make([]splunk.Filter, 0, len(pairs))
			for _, p := range pairs {
				filters = append(filters, splunk.Filter{Key: p.key, Value: p.value})
			}

			sp, err := splunkFromCmd(cmd)
			if err != nil {
				return err
			}
			if sp == nil {
				return errors.New("splunk is not configured: set --splunk-host, --splunk-user and --splunk-pass or SPLUNK_HOST, SPLUNK_USERNAME and SPLUNK_PASSWORD")
			}

			timeout := cmd.Duration("timeout")
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			records, err := splunk.Query(ctx, sp.Connection(), filters, splunk.WithTimeout(timeout))
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			slog.Debug("search complete", "filters", len(filters), "results", len(records))

			w := newResultWriter(cmd, outFormat)
			defer closeWriter(w)
			return w.Serialize(ctx, records)
		},
	}
}
