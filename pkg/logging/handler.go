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
	"sync"
	"sync/atomic"
)

// Sink receives formatted, newline-terminated JSON lines.
type Sink interface {
	Write(ctx context.Context, line []byte) error
}

// Flusher is implemented by sinks that deliver asynchronously.
type Flusher interface {
	Flush(ctx context.Context) error
}

// WriterSink writes lines to an io.Writer, one Write call per line.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a Sink serializing writes to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write implements Sink.
func (s *WriterSink) Write(_ context.Context, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(line)
	return err
}

// output is one attached destination. Handlers derived through WithAttrs
// and WithGroup share it, so rebinding the formatter reaches all of them.
type output struct {
	kind      string
	level     slog.Leveler
	sink      Sink
	formatter atomic.Pointer[Formatter]
}

func newOutput(kind string, level slog.Leveler, sink Sink, f Formatter) *output {
	o := &output{kind: kind, level: level, sink: sink}
	o.formatter.Store(&f)
	return o
}

// recordHandler is the slog.Handler for a single output.
type recordHandler struct {
	out    *output
	base   Record
	groups []string
}

// Enabled implements slog.Handler.
func (h *recordHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.out.level == nil || level >= h.out.level.Level()
}

// Handle implements slog.Handler.
func (h *recordHandler) Handle(ctx context.Context, r slog.Record) error {
	line := h.out.formatter.Load().formatWith(h.base, h.groups, r)
	return h.out.sink.Write(ctx, line)
}

// WithAttrs implements slog.Handler.
func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	base := cloneRecord(h.base)
	target := descend(base, h.groups)
	for _, a := range attrs {
		addAttr(target, a)
	}
	return &recordHandler{out: h.out, base: base, groups: h.groups}
}

// WithGroup implements slog.Handler.
func (h *recordHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, len(h.groups), len(h.groups)+1)
	copy(groups, h.groups)
	return &recordHandler{out: h.out, base: h.base, groups: append(groups, name)}
}

// fanoutHandler applies the logger-wide floor and dispatches each record to
// every enabled child.
type fanoutHandler struct {
	floor    slog.Level
	handlers []slog.Handler
}

// Enabled implements slog.Handler.
func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.floor {
		return false
	}
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler. Every enabled child gets the record even
// when an earlier one fails.
func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.floor {
		return nil
	}
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{floor: h.floor, handlers: handlers}
}

// WithGroup implements slog.Handler.
func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{floor: h.floor, handlers: handlers}
}
