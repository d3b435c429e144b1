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

package splunk

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

const (
	// UserAgent is sent with every request to Splunk.
	UserAgent = "Cumulus-Logging/1.0"

	// RequestIDHeader carries a per-request id for correlating diagnostics.
	RequestIDHeader = "X-Request-ID"

	submitPath = "/services/receivers/simple"
	exportPath = "/servicesNS/admin/search/search/jobs/export"

	// errorBodyLimit caps how much of a failed response is kept in the error.
	errorBodyLimit = 512
)

// Option configures a Client.
type Option func(*Client)

// Client talks to the Splunk management API over HTTPS with basic auth.
// Certificate verification is disabled: pipeline Splunk instances use
// self-signed management certificates.
type Client struct {
	cfg        Config
	userAgent  string
	sourceHost string
	httpClient *http.Client
}

// WithHTTPClient replaces the underlying HTTP client. The caller is then
// responsible for its TLS and timeout settings.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the total timeout for each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithSourceHost sets the host field attached to submitted events.
// Defaults to the local hostname.
func WithSourceHost(host string) Option {
	return func(c *Client) {
		c.sourceHost = host
	}
}

// NewClient validates cfg, applies defaults and returns a ready Client.
func NewClient(cfg Config, options ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	c := &Client{
		cfg:        cfg.WithDefaults(),
		userAgent:  UserAgent,
		sourceHost: hostname,
		httpClient: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultTransport(),
		},
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// Config returns the effective connection config, defaults applied.
func (c *Client) Config() Config {
	return c.cfg
}

func newDefaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,

		IdleConnTimeout:   defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2: true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, //nolint:gosec // Splunk management certs are self-signed
		},
	}
}

// Submit posts a single event to the simple receiver endpoint.
// The event body is sent as-is.
func (c *Client) Submit(ctx context.Context, source string, event []byte) error {
	params := url.Values{}
	params.Set("index", c.cfg.Index)
	params.Set("sourcetype", defaults.SplunkSourceType)
	if source != "" {
		params.Set("source", source)
	}
	if c.sourceHost != "" {
		params.Set("host", c.sourceHost)
	}

	endpoint := c.cfg.baseURL() + submitPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(event))
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInternal, "failed to create submit request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do decorates req with auth and tracing headers and executes it.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	requestID := uuid.New().String()
	req.SetBasicAuth(c.cfg.User, c.cfg.Pass)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	slog.Debug("splunk request",
		"method", req.Method,
		"path", req.URL.Path,
		"requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		code := cerrors.ErrCodeUnavailable
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			code = cerrors.ErrCodeTimeout
		}
		return nil, cerrors.WrapWithContext(code, "splunk request failed", err,
			map[string]any{"path": req.URL.Path, "requestID": requestID})
	}
	return resp, nil
}

// checkStatus turns a non-2xx response into an UPSTREAM_HTTP error.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return cerrors.NewWithContext(cerrors.ErrCodeUpstreamHTTP,
		fmt.Sprintf("splunk returned %s", resp.Status),
		map[string]any{
			"status": resp.StatusCode,
			"body":   strings.TrimSpace(string(body)),
		})
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
