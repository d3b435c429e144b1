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

package defaults

import "time"

const (
	// SplunkPort is the Splunk management port used when a config omits one.
	SplunkPort = "8089"

	// SplunkIndex is the index records are written to and searched in by default.
	SplunkIndex = "main"

	// SplunkSourceType is the sourcetype attached to forwarded records.
	SplunkSourceType = "_json"
)

const (
	// SinkMaxInFlight bounds concurrent fire-and-forget sends per Splunk sink.
	// Records emitted while the bound is reached are dropped.
	SinkMaxInFlight = 64

	// SinkFlushTimeout is how long Flush waits for in-flight sends by default.
	SinkFlushTimeout = 10 * time.Second
)

const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	// Export searches stream results, so only the first byte is bounded here.
	HTTPResponseHeaderTimeout = 20 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

const (
	// CLIQueryTimeout is the default timeout for the query command.
	CLIQueryTimeout = 2 * time.Minute

	// CLIEmitTimeout bounds how long the emit command waits for delivery.
	CLIEmitTimeout = 30 * time.Second
)

// Server settings for the serve command.
const (
	// ServerPort is the relay listen port.
	ServerPort = 8080

	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Search responses wait on Splunk, so this exceeds CLIQueryTimeout.
	ServerWriteTimeout = CLIQueryTimeout + 10*time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerRateLimit is the sustained requests per second accepted on /v1 routes.
	ServerRateLimit = 100

	// ServerRateLimitBurst is the rate limiter burst size.
	ServerRateLimitBurst = 200

	// ServerMaxBodyBytes bounds a POSTed log record.
	ServerMaxBodyBytes = 1 << 20
)
