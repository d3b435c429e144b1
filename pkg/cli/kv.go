/*
Copyright © 2026 Cumulus Pipeline Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/kvlog"
)

func kvCmd() *cli.Command {
	return &cli.Command{
		Name:  "kv",
		Usage: "Print a legacy key=value log line",
		Description: `Build the key=value line read by older pipeline stages. Fields keep the
order given; timestamp, data_pipeline_id, dataset_id and is_error are
always present. Pipeline and dataset ids default to PIPELINE_ID and
DATASET_ID.

# Examples

  cumulus-log kv --field process=pdr --field granule_id=g1 --error`,
		Flags: []cli.Flag{
			fieldFlag("line field"),
			&cli.StringFlag{
				Name:  "pipeline-id",
				Usage: "data pipeline id (default: $" + kvlog.PipelineIDEnvVar + ")",
			},
			&cli.StringFlag{
				Name:  "dataset-id",
				Usage: "dataset id (default: $" + kvlog.DatasetIDEnvVar + ")",
			},
			&cli.BoolFlag{
				Name:  "error",
				Usage: "mark the line as an error (is_error=1)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			pairs, err := parsePairs("field", cmd.StringSlice("field"))
			if err != nil {
				return err
			}
			fields := make([]kvlog.Field, 0, len(pairs))
			for _, p := range pairs {
				fields = append(fields, kvlog.F(p.key, p.value))
			}

			p := kvlog.PipelineFromEnv()
			if cmd.IsSet("pipeline-id") {
				p.DataPipelineID = cmd.String("pipeline-id")
			}
			if cmd.IsSet("dataset-id") {
				p.DatasetID = cmd.String("dataset-id")
			}

			_, err = fmt.Fprintln(stdout(cmd), kvlog.MakeLogString(p, cmd.Bool("error"), fields...))
			return err
		},
	}
}
