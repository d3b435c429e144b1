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

package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/splunk"
)

const (
	kindDiscard = "discard"
	kindStdout  = "stdout"
	kindSplunk  = "splunk"
)

// StdoutConfig requests a console handler.
type StdoutConfig struct {
	// Level is the handler threshold. Empty passes everything the logger passes.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Writer overrides the destination. Nil means the registry's console
	// writer, os.Stderr unless configured otherwise.
	Writer io.Writer `json:"-" yaml:"-"`
}

// SplunkConfig requests a Splunk handler. Host, User and Pass are required.
type SplunkConfig struct {
	Host  string `json:"host" yaml:"host"`
	Port  string `json:"port,omitempty" yaml:"port,omitempty"`
	User  string `json:"user" yaml:"user"`
	Pass  string `json:"pass" yaml:"pass"`
	Index string `json:"index,omitempty" yaml:"index,omitempty"`
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// Connection returns the connection part of the config.
func (c SplunkConfig) Connection() splunk.Config {
	return splunk.Config{
		Host:  c.Host,
		Port:  c.Port,
		User:  c.User,
		Pass:  c.Pass,
		Index: c.Index,
	}
}

// LoggerOption configures a single GetLogger call.
type LoggerOption func(*loggerSettings)

type loggerSettings struct {
	splunk         *SplunkConfig
	stdout         *StdoutConfig
	collectionName string
	granuleID      string
}

// WithSplunk attaches a Splunk handler. A nil config is ignored.
func WithSplunk(cfg *SplunkConfig) LoggerOption {
	return func(s *loggerSettings) {
		s.splunk = cfg
	}
}

// WithStdout attaches a console handler. A nil config is ignored.
func WithStdout(cfg *StdoutConfig) LoggerOption {
	return func(s *loggerSettings) {
		s.stdout = cfg
	}
}

// WithCollectionName binds the collection name stamped on every record.
func WithCollectionName(name string) LoggerOption {
	return func(s *loggerSettings) {
		s.collectionName = name
	}
}

// WithGranuleID binds the granule id stamped on every record.
func WithGranuleID(id string) LoggerOption {
	return func(s *loggerSettings) {
		s.granuleID = id
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithConsoleWriter sets where stdout handlers write when their config
// does not name a writer.
func WithConsoleWriter(w io.Writer) RegistryOption {
	return func(r *Registry) {
		if w != nil {
			r.console = w
		}
	}
}

// WithClock overrides the clock used for record timestamps.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// WithSplunkClientOptions passes options to every Splunk client the
// registry builds.
func WithSplunkClientOptions(options ...splunk.Option) RegistryOption {
	return func(r *Registry) {
		r.clientOptions = append(r.clientOptions, options...)
	}
}

// WithMaxInFlight bounds concurrent sends per Splunk handler.
func WithMaxInFlight(n int) RegistryOption {
	return func(r *Registry) {
		r.maxInFlight = n
	}
}

// WithSendErrorHandler receives Splunk delivery failures instead of the
// process diagnostics logger.
func WithSendErrorHandler(fn func(logger string, err error)) RegistryOption {
	return func(r *Registry) {
		r.onSendError = fn
	}
}

// Registry owns the named loggers of an application. Create one at the
// composition root and pass it to the components that log.
type Registry struct {
	console       io.Writer
	now           func() time.Time
	clientOptions []splunk.Option
	maxInFlight   int
	onSendError   func(logger string, err error)

	mu      sync.Mutex
	loggers map[string]*Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		console: os.Stderr,
		loggers: make(map[string]*Logger),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// GetLogger returns the logger called name, creating it on first use, and
// rebuilds its handler set from options:
//
//   - no Splunk and no stdout config: one handler that discards everything
//   - stdout config: a console handler at the requested level
//   - Splunk config: a Splunk handler at the requested level
//
// The logger-wide level is INFO regardless of handler levels. A Splunk
// config missing host, user or pass fails the call with an INVALID_CONFIG
// error and leaves the logger with no handlers at all.
func (r *Registry) GetLogger(name string, options ...LoggerOption) (*Logger, error) {
	settings := &loggerSettings{}
	for _, opt := range options {
		opt(settings)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	logger, ok := r.loggers[name]
	if !ok {
		logger = newLogger(name)
		r.loggers[name] = logger
	}
	logger.replace(nil, false)

	outputs, err := r.buildOutputs(name, settings)
	if err != nil {
		return nil, err
	}

	logger.replace(outputs, len(outputs) == 0)

	slog.Debug("logger configured",
		"name", name,
		"sinks", logger.Sinks(),
		"collectionName", settings.collectionName,
		"granuleId", settings.granuleID)

	return logger, nil
}

func (r *Registry) buildOutputs(name string, s *loggerSettings) ([]*output, error) {
	f := Formatter{
		CollectionName: s.collectionName,
		GranuleID:      s.granuleID,
		Now:            r.now,
	}

	var outputs []*output

	if s.stdout != nil {
		level, err := parseHandlerLevel(s.stdout.Level)
		if err != nil {
			return nil, err
		}
		w := s.stdout.Writer
		if w == nil {
			w = r.console
		}
		outputs = append(outputs, newOutput(kindStdout, level, NewWriterSink(w), f))
	}

	if s.splunk != nil {
		level, err := parseHandlerLevel(s.splunk.Level)
		if err != nil {
			return nil, err
		}
		client, err := splunk.NewClient(s.splunk.Connection(), r.clientOptions...)
		if err != nil {
			return nil, err
		}
		sink := splunk.NewSink(client, name, r.maxInFlight)
		if r.onSendError != nil {
			onErr := r.onSendError
			sink.OnError = func(err error) { onErr(name, err) }
		}
		outputs = append(outputs, newOutput(kindSplunk, level, sink, f))
	}

	return outputs, nil
}

// Lookup returns the logger called name if GetLogger has created it.
func (r *Registry) Lookup(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[name]
	return l, ok
}

// Names returns the names of all loggers, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flush flushes every logger.
func (r *Registry) Flush(ctx context.Context) error {
	r.mu.Lock()
	loggers := make([]*Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		loggers = append(loggers, l)
	}
	r.mu.Unlock()

	var errs []error
	for _, l := range loggers {
		if err := l.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
