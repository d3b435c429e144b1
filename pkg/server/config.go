// Copyright (c) 2026, Cumulus Pipeline Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
)

// Config holds relay settings. Start from NewConfig.
type Config struct {
	// Server identity, reported on the default route
	Name    string
	Version string

	Address string
	Port    int

	// Rate limiting configuration for /v1 routes
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// MaxBodyBytes bounds a POSTed record batch.
	MaxBodyBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// FlushTimeout bounds the wait for in-flight Splunk sends on shutdown.
	FlushTimeout time.Duration
}

// NewConfig returns defaults, with PORT and SHUTDOWN_TIMEOUT_SECONDS
// applied from the environment when set.
func NewConfig() *Config {
	cfg := &Config{
		Name:              "cumulus-log",
		Version:           "undefined",
		Port:              defaults.ServerPort,
		RateLimit:         defaults.ServerRateLimit,
		RateLimitBurst:    defaults.ServerRateLimitBurst,
		MaxBodyBytes:      defaults.ServerMaxBodyBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
		FlushTimeout:      defaults.SinkFlushTimeout,
	}

	if port, ok := positiveEnvInt("PORT"); ok {
		cfg.Port = port
	}
	// Orchestrators send SIGTERM and wait a grace period before killing the
	// process; shutdown plus the final flush should fit inside it.
	if seconds, ok := positiveEnvInt("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}

// positiveEnvInt reads key as a positive integer. Unset, malformed and
// non-positive values report false and leave the default in place.
func positiveEnvInt(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Addr is the listen address, host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}
