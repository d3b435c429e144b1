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
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"
)

// Logger is a named handle shared by everything in the process that asks a
// Registry for the same name. Its handler set is replaced, never appended
// to, each time the Registry configures it.
type Logger struct {
	name string

	mu       sync.RWMutex
	handler  *fanoutHandler
	outputs  []*output
	discards bool

	// retired holds asynchronous sinks from replaced handler sets until a
	// Flush has drained them.
	retired []Flusher
}

func newLogger(name string) *Logger {
	return &Logger{
		name:    name,
		handler: &fanoutHandler{floor: LevelInfo},
	}
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Handlers returns how many handlers are attached.
func (l *Logger) Handlers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.handler.handlers)
}

// Sinks lists the kinds of the attached handlers in attach order:
// "discard", "stdout" or "splunk".
func (l *Logger) Sinks() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var kinds []string
	if l.discards {
		kinds = append(kinds, kindDiscard)
	}
	for _, o := range l.outputs {
		kinds = append(kinds, o.kind)
	}
	return kinds
}

// Level returns the logger-wide minimum level.
func (l *Logger) Level() slog.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handler.floor
}

// Handler returns the current handler set as one slog.Handler.
func (l *Logger) Handler() slog.Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handler
}

// Slog returns an *slog.Logger over the current handler set. It does not
// follow later reconfiguration; ask again after GetLogger.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.Handler())
}

// Bind sets the collection name and granule id stamped on every record by
// all attached handlers.
func (l *Logger) Bind(collectionName, granuleID string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.outputs {
		f := *o.formatter.Load()
		f.CollectionName = collectionName
		f.GranuleID = granuleID
		o.formatter.Store(&f)
	}
}

// Log emits raw at level. raw is a message string or a field map; see
// Formatter.Format for the accepted shapes.
func (l *Logger) Log(ctx context.Context, level slog.Level, raw any) {
	h := l.Handler()
	if !h.Enabled(ctx, level) {
		return
	}
	_ = h.Handle(ctx, buildRecord(level, raw))
}

// Debug emits raw at DEBUG, which the logger floor always suppresses.
func (l *Logger) Debug(raw any) { l.Log(context.Background(), LevelDebug, raw) }

// Info emits raw at INFO.
func (l *Logger) Info(raw any) { l.Log(context.Background(), LevelInfo, raw) }

// Warning emits raw at WARNING.
func (l *Logger) Warning(raw any) { l.Log(context.Background(), LevelWarning, raw) }

// Error emits raw at ERROR.
func (l *Logger) Error(raw any) { l.Log(context.Background(), LevelError, raw) }

// Critical emits raw at CRITICAL.
func (l *Logger) Critical(raw any) { l.Log(context.Background(), LevelCritical, raw) }

// Flush waits for asynchronous sinks to finish in-flight deliveries,
// including sinks of handler sets replaced by a later GetLogger call.
func (l *Logger) Flush(ctx context.Context) error {
	l.mu.RLock()
	outputs := l.outputs
	retired := append([]Flusher(nil), l.retired...)
	l.mu.RUnlock()

	var errs []error
	var drained []Flusher
	for _, f := range retired {
		if err := f.Flush(ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		drained = append(drained, f)
	}
	for _, o := range outputs {
		if f, ok := o.sink.(Flusher); ok {
			if err := f.Flush(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(drained) > 0 {
		l.mu.Lock()
		l.retired = slices.DeleteFunc(l.retired, func(f Flusher) bool {
			return slices.Contains(drained, f)
		})
		l.mu.Unlock()
	}
	return errors.Join(errs...)
}

// replace swaps in a new handler set.
func (l *Logger) replace(outputs []*output, discard bool) {
	handlers := make([]slog.Handler, 0, len(outputs)+1)
	if discard {
		handlers = append(handlers, slog.DiscardHandler)
	}
	for _, o := range outputs {
		handlers = append(handlers, &recordHandler{out: o})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, o := range l.outputs {
		if f, ok := o.sink.(Flusher); ok {
			l.retired = append(l.retired, f)
		}
	}
	l.outputs = outputs
	l.discards = discard
	l.handler = &fanoutHandler{floor: LevelInfo, handlers: handlers}
}

// buildRecord turns raw into an slog record. A string message becomes the
// record message; map fields become attributes in key order.
func buildRecord(level slog.Level, raw any) slog.Record {
	if s, ok := raw.(string); ok {
		return slog.NewRecord(time.Now(), level, s, 0)
	}

	fields := toRecord(raw)
	msg, isString := fields[KeyMessage].(string)
	if isString {
		delete(fields, KeyMessage)
	}

	r := slog.NewRecord(time.Now(), level, msg, 0)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.AddAttrs(slog.Any(k, fields[k]))
	}
	return r
}
