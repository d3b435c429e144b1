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
	"fmt"
	"log/slog"
	"strings"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

// Pipeline severity levels. They map onto slog levels so handlers built
// here interoperate with any slog.Handler.
const (
	LevelDebug    = slog.LevelDebug
	LevelInfo     = slog.LevelInfo
	LevelWarning  = slog.LevelWarn
	LevelError    = slog.LevelError
	LevelCritical = slog.Level(12)
)

var levelNames = []struct {
	level slog.Level
	name  string
}{
	{LevelCritical, "CRITICAL"},
	{LevelError, "ERROR"},
	{LevelWarning, "WARNING"},
	{LevelInfo, "INFO"},
	{LevelDebug, "DEBUG"},
}

// LevelName returns the pipeline name for l, e.g. "WARNING" rather than
// slog's "WARN". Levels between named ones render as "INFO+2".
func LevelName(l slog.Level) string {
	for _, ln := range levelNames {
		if l >= ln.level {
			if l == ln.level {
				return ln.name
			}
			return fmt.Sprintf("%s%+d", ln.name, int(l-ln.level))
		}
	}
	return fmt.Sprintf("DEBUG%+d", int(l-LevelDebug))
}

// ParseLevel parses a case-insensitive level name.
// Accepted: DEBUG, INFO, WARN, WARNING, ERROR, CRITICAL, FATAL.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL", "FATAL":
		return LevelCritical, nil
	default:
		return LevelInfo, cerrors.NewWithContext(cerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown log level %q", s),
			map[string]any{"level": s})
	}
}

// parseHandlerLevel parses a handler threshold. Empty means no threshold of
// its own: the handler passes whatever the logger passes.
func parseHandlerLevel(s string) (slog.Leveler, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	l, err := ParseLevel(s)
	if err != nil {
		return nil, err
	}
	return l, nil
}
