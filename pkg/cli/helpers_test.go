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

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/serializer"
)

// splunkEnv lists the variables runCLI clears for every run.
var splunkEnv = []string{
	"SPLUNK_HOST", "SPLUNK_PORT", "SPLUNK_USERNAME", "SPLUNK_PASSWORD", "SPLUNK_INDEX", "SPLUNK_LEVEL",
}

// runCLI runs the root command in an empty working directory with the
// Splunk and pipeline environment cleared and returns what it wrote to
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWithSetup(t, nil, args...)
}

// runCLIWithSetup is runCLI with setup applied to the environment after it
// has been cleared.
func runCLIWithSetup(t *testing.T, setup func(t *testing.T), args ...string) (string, error) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Chdir(t.TempDir())
	for _, k := range append([]string{"PIPELINE_ID", "DATASET_ID"}, splunkEnv...) {
		t.Setenv(k, "")
	}
	if setup != nil {
		setup(t)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = io.Discard

	err := root.Run(context.Background(), append([]string{name, "--log-level", "error"}, args...))
	return out.String(), err
}

// splunkStub answers the receiver and export endpoints over TLS.
type splunkStub struct {
	srv        *httptest.Server
	status     int
	exportBody string
	mu         sync.Mutex
	events     []string
	searches   []string
	sources    []string
}

func newSplunkStub(t *testing.T, status int, exportBody string) *splunkStub {
	t.Helper()
	s := &splunkStub{status: status, exportBody: exportBody}
	s.srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		switch r.URL.Path {
		case "/services/receivers/simple":
			body, _ := io.ReadAll(r.Body)
			s.events = append(s.events, string(body))
			s.sources = append(s.sources, r.URL.Query().Get("source"))
		case "/servicesNS/admin/search/search/jobs/export":
			s.searches = append(s.searches, r.PostForm.Get("search"))
		}
		s.mu.Unlock()

		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, s.exportBody)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

// flags returns the --splunk-* arguments pointing at the stub.
func (s *splunkStub) flags(t *testing.T) []string {
	t.Helper()
	u, err := url.Parse(s.srv.URL)
	if err != nil {
		t.Fatalf("failed to parse stub url: %v", err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("failed to split stub host: %v", err)
	}
	return []string{"--splunk-host", host, "--splunk-port", port, "--splunk-user", "u", "--splunk-pass", "p"}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "valid yaml format", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "valid json format", format: "json", wantFormat: serializer.FormatJSON},
		{name: "valid table format", format: "table", wantFormat: serializer.FormatTable},
		{name: "invalid format xml", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []pair
		wantErr bool
	}{
		{name: "empty", args: nil, want: []pair{}},
		{name: "ordered", args: []string{"b=2", "a=1"}, want: []pair{{"b", "2"}, {"a", "1"}}},
		{name: "value with equals", args: []string{"q=x=y"}, want: []pair{{"q", "x=y"}}},
		{name: "empty value", args: []string{"k="}, want: []pair{{"k", ""}}},
		{name: "missing equals", args: []string{"k"}, wantErr: true},
		{name: "empty key", args: []string{"=v"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePairs("field", tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePairs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parsePairs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
