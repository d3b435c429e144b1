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
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
)

// Sink forwards formatted log lines to Splunk without making the emitting
// caller wait for the response. Sends run concurrently up to a fixed bound;
// a line written while the bound is reached is dropped and counted.
//
// Failures never reach the emitter. They go to OnError, which defaults to
// a warning on the process diagnostics logger.
type Sink struct {
	client *Client
	source string

	// OnError receives every failed send. It may be called from multiple
	// goroutines at once.
	OnError func(err error)

	limit int

	mu    sync.RWMutex
	group *errgroup.Group
}

// NewSink returns a Sink submitting through client, tagging events with
// source. maxInFlight <= 0 selects defaults.SinkMaxInFlight.
func NewSink(client *Client, source string, maxInFlight int) *Sink {
	if maxInFlight <= 0 {
		maxInFlight = defaults.SinkMaxInFlight
	}
	s := &Sink{
		client: client,
		source: source,
		limit:  maxInFlight,
	}
	s.group = s.newGroup()
	return s
}

func (s *Sink) newGroup() *errgroup.Group {
	g := &errgroup.Group{}
	g.SetLimit(s.limit)
	return g
}

// Write schedules line for delivery and returns immediately.
// The line is copied; the caller may reuse its buffer.
func (s *Sink) Write(ctx context.Context, line []byte) error {
	event := bytes.TrimRight(bytes.Clone(line), "\n")
	sendCtx := context.WithoutCancel(ctx)

	s.mu.RLock()
	started := s.group.TryGo(func() error {
		s.send(sendCtx, event)
		return nil
	})
	s.mu.RUnlock()

	if !started {
		eventsDropped.Inc()
	}
	return nil
}

func (s *Sink) send(ctx context.Context, event []byte) {
	if err := s.client.Submit(ctx, s.source, event); err != nil {
		eventsTotal.WithLabelValues(statusError).Inc()
		s.reportError(err)
		return
	}
	eventsTotal.WithLabelValues(statusSuccess).Inc()
}

func (s *Sink) reportError(err error) {
	if s.OnError != nil {
		s.OnError(err)
		return
	}
	slog.Warn("splunk send failed", "source", s.source, "error", err)
}

// Flush waits until every send started before the call has finished or ctx
// is done. Writes made during or after a flush start on a fresh group and
// never wait for it; the in-flight bound applies per group.
func (s *Sink) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.group
	s.group = s.newGroup()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
