/*
Copyright © 2026 Cumulus Pipeline Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/config"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/serializer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func fieldFlag(usage string) cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "field",
		Usage: usage + " (format: key=value, can be repeated)",
	}
}

// splunkFlags configure a Splunk connection. They have no environment
// sources: when --splunk-host is absent the SPLUNK_* variables are read as
// a whole by config.SplunkFromEnv.
func splunkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "splunk-host",
			Usage: "Splunk host name",
		},
		&cli.StringFlag{
			Name:  "splunk-port",
			Usage: "Splunk management port",
			Value: defaults.SplunkPort,
		},
		&cli.StringFlag{
			Name:  "splunk-user",
			Usage: "Splunk user name",
		},
		&cli.StringFlag{
			Name:  "splunk-pass",
			Usage: "Splunk password",
		},
		&cli.StringFlag{
			Name:  "splunk-index",
			Usage: "Splunk index",
			Value: defaults.SplunkIndex,
		},
	}
}

const defaultLoggerName = "cumulus"

// loggerFlags describe the logger built by emit and serve.
func loggerFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "logger name, sent to Splunk as the event source",
			Value: defaultLoggerName,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "logger config file (YAML or JSON); replaces the handler flags",
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "collection name stamped on every record",
		},
		&cli.StringFlag{
			Name:  "granule",
			Usage: "granule id stamped on every record",
		},
		&cli.BoolFlag{
			Name:  "stdout",
			Usage: "write records to stdout",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "stdout-level",
			Usage: "minimum level for the stdout handler",
		},
		&cli.StringFlag{
			Name:  "splunk-level",
			Usage: "minimum level for the Splunk handler",
		},
	}, splunkFlags()...)
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", outFormat, serializer.SupportedFormats())
	}
	return outFormat, nil
}

// splunkFromCmd returns the Splunk settings from flags, or from the
// environment when --splunk-host is not set. Nil means Splunk is not
// configured.
func splunkFromCmd(cmd *cli.Command) (*logging.SplunkConfig, error) {
	if !cmd.IsSet("splunk-host") {
		return config.SplunkFromEnv()
	}
	return &logging.SplunkConfig{
		Host:  cmd.String("splunk-host"),
		Port:  cmd.String("splunk-port"),
		User:  cmd.String("splunk-user"),
		Pass:  cmd.String("splunk-pass"),
		Index: cmd.String("splunk-index"),
	}, nil
}

type pair struct {
	key   string
	value string
}

// parsePairs splits key=value arguments on the first '='.
func parsePairs(flag string, args []string) ([]pair, error) {
	pairs := make([]pair, 0, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --%s %q, expected key=value", flag, arg)
		}
		pairs = append(pairs, pair{key: k, value: v})
	}
	return pairs, nil
}

// stdout is where commands write results when no --output is given.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// newResultWriter writes to --output when set, otherwise to the command's
// stdout.
func newResultWriter(cmd *cli.Command, format serializer.Format) *serializer.Writer {
	if path := cmd.String("output"); path != "" {
		return serializer.NewFileWriterOrStdout(format, path)
	}
	return serializer.NewWriter(format, stdout(cmd))
}

func closeWriter(w *serializer.Writer) {
	if err := w.Close(); err != nil {
		slog.Warn("failed to close serializer", "error", err)
	}
}

// loggerConfigFromCmd reads --config when given, otherwise the handler
// flags and the Splunk environment. Name and metadata flags override the
// file.
func loggerConfigFromCmd(cmd *cli.Command) (*config.LoggerConfig, error) {
	var lc *config.LoggerConfig

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		lc = loaded
	} else {
		lc = &config.LoggerConfig{}
		if cmd.Bool("stdout") {
			lc.Stdout = &logging.StdoutConfig{Level: cmd.String("stdout-level")}
		}
		sp, err := splunkFromCmd(cmd)
		if err != nil {
			return nil, err
		}
		if sp != nil && cmd.IsSet("splunk-level") {
			sp.Level = cmd.String("splunk-level")
		}
		lc.Splunk = sp
	}

	if cmd.IsSet("name") || lc.Name == "" {
		lc.Name = cmd.String("name")
	}
	if cmd.IsSet("collection") {
		lc.CollectionName = cmd.String("collection")
	}
	if cmd.IsSet("granule") {
		lc.GranuleID = cmd.String("granule")
	}
	return lc, nil
}
