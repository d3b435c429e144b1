/*
Copyright © 2026 Cumulus Pipeline Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/config"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/server"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/splunk"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run an HTTP relay that logs posted records and proxies Splunk searches",
		Description: `Start an HTTP server in front of one Cumulus logger.

  POST /v1/logs?level=ERROR   log a string, an object or an array of them
  GET  /v1/search?filter=k=v  search Splunk, one filter per parameter

Search is only available when Splunk is configured. In-flight Splunk sends
are flushed before the server exits on SIGINT or SIGTERM.

# Examples

  cumulus-log serve --port 8080 --collection MOD09GQ \
    --splunk-host splunk.example.com --splunk-user svc --splunk-pass secret`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "address to listen on",
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "port to listen on",
				Value:   defaults.ServerPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.IntFlag{
				Name:  "rate-limit",
				Usage: "requests per second accepted on /v1 routes",
				Value: defaults.ServerRateLimit,
			},
			&cli.IntFlag{
				Name:  "rate-burst",
				Usage: "burst size for the rate limit",
				Value: defaults.ServerRateLimitBurst,
			},
			&cli.DurationFlag{
				Name:  "search-timeout",
				Usage: "upper bound for one Splunk search",
				Value: defaults.CLIQueryTimeout,
			},
		}, loggerFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			lc, err := loggerConfigFromCmd(cmd)
			if err != nil {
				return err
			}

			reg := logging.NewRegistry(logging.WithConsoleWriter(stdout(cmd)))
			logger, err := reg.GetLogger(lc.Name, lc.Options()...)
			if err != nil {
				return fmt.Errorf("failed to configure logger %q: %w", lc.Name, err)
			}

			searcher, err := newSearcher(lc, cmd.Duration("search-timeout"))
			if err != nil {
				return err
			}

			cfg := server.NewConfig()
			cfg.Name = name
			cfg.Version = version
			cfg.Address = cmd.String("address")
			cfg.Port = cmd.Int("port")
			cfg.RateLimit = rate.Limit(cmd.Int("rate-limit"))
			cfg.RateLimitBurst = cmd.Int("rate-burst")

			slog.Info("starting relay",
				"logger", lc.Name,
				"sinks", logger.Sinks(),
				"search", searcher != nil,
				"address", cfg.Addr())

			// A nil *splunk.Client must not become a non-nil interface.
			if searcher == nil {
				return server.NewServer(cfg, logger, nil).Start(ctx)
			}
			return server.NewServer(cfg, logger, searcher).Start(ctx)
		},
	}
}

// newSearcher returns a Splunk client for the logger's Splunk settings,
// falling back to the environment. Nil when Splunk is not configured.
func newSearcher(lc *config.LoggerConfig, timeout time.Duration) (*splunk.Client, error) {
	sp := lc.Splunk
	if sp == nil {
		fromEnv, err := config.SplunkFromEnv()
		if err != nil {
			return nil, err
		}
		sp = fromEnv
	}
	if sp == nil {
		return nil, nil
	}
	return splunk.NewClient(sp.Connection(),
		splunk.WithTimeout(timeout),
		splunk.WithUserAgent(fmt.Sprintf("%s/%s", name, version)))
}
