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
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"time"
)

// Fixed fields every formatted record carries.
const (
	KeyMessage        = "message"
	KeyTimestamp      = "timestamp"
	KeyCollectionName = "collectionName"
	KeyGranuleID      = "granuleId"
	KeyLevel          = "level"
)

// TimestampLayout is ISO-8601 with microseconds and a numeric UTC offset,
// "+00:00" rather than "Z" for UTC.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Record is one log record as a field map.
type Record map[string]any

// Formatter turns raw log records into single-line JSON objects decorated
// with the pipeline metadata. The zero value is usable and stamps records
// with the local clock.
type Formatter struct {
	CollectionName string
	GranuleID      string

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// Format decorates raw and returns it as a newline-terminated JSON line.
// raw may be a string, a map with string keys, or any other value, which
// is stringified into the message. raw is never modified.
func (f Formatter) Format(level slog.Level, raw any) []byte {
	return encode(f.Decorate(level, raw))
}

// Decorate returns a new Record for raw with message defaulted and the
// fixed fields set. Fixed fields overwrite same-named input fields.
func (f Formatter) Decorate(level slog.Level, raw any) Record {
	rec := toRecord(raw)
	f.stamp(rec, level)
	return rec
}

// FormatRecord formats an slog record: its attributes become fields and a
// non-empty Message becomes the message field.
func (f Formatter) FormatRecord(r slog.Record) []byte {
	return f.formatWith(nil, nil, r)
}

func (f Formatter) formatWith(base Record, groups []string, r slog.Record) []byte {
	rec := cloneRecord(base)
	target := descend(rec, groups)
	r.Attrs(func(a slog.Attr) bool {
		addAttr(target, a)
		return true
	})

	if _, ok := rec[KeyMessage]; !ok || r.Message != "" {
		rec[KeyMessage] = r.Message
	}
	f.stamp(rec, r.Level)
	return encode(rec)
}

func (f Formatter) stamp(rec Record, level slog.Level) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	rec[KeyTimestamp] = now().Format(TimestampLayout)
	rec[KeyCollectionName] = f.CollectionName
	rec[KeyGranuleID] = f.GranuleID
	rec[KeyLevel] = LevelName(level)
}

// toRecord converts a raw log value into a fresh Record.
func toRecord(raw any) Record {
	var rec Record
	switch v := raw.(type) {
	case nil:
		rec = Record{}
	case string:
		rec = Record{KeyMessage: v}
	case Record:
		rec = cloneRecord(v)
	case map[string]any:
		rec = cloneRecord(v)
	case map[string]string:
		rec = make(Record, len(v)+5)
		for k, s := range v {
			rec[k] = s
		}
	case error, fmt.Stringer:
		rec = Record{KeyMessage: stringify(v)}
	default:
		rec = reflectRecord(raw)
	}
	if _, ok := rec[KeyMessage]; !ok {
		rec[KeyMessage] = ""
	}
	return rec
}

// reflectRecord handles maps keyed by string-like types; everything else
// becomes the message text.
func reflectRecord(raw any) Record {
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		rec := make(Record, rv.Len()+5)
		iter := rv.MapRange()
		for iter.Next() {
			rec[iter.Key().String()] = iter.Value().Interface()
		}
		return rec
	}
	return Record{KeyMessage: stringify(raw)}
}

// cloneRecord copies the top level and any nested Records, which are the
// only maps this package mutates in place.
func cloneRecord(src map[string]any) Record {
	dst := make(Record, len(src)+5)
	for k, v := range src {
		if nested, ok := v.(Record); ok {
			v = cloneRecord(nested)
		}
		dst[k] = v
	}
	return dst
}

// descend returns the nested Record for groups, creating levels as needed.
func descend(rec Record, groups []string) Record {
	for _, g := range groups {
		next, ok := rec[g].(Record)
		if !ok {
			next = Record{}
			rec[g] = next
		}
		rec = next
	}
	return rec
}

func addAttr(target Record, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return
		}
		dst := target
		if a.Key != "" {
			dst = descend(target, []string{a.Key})
		}
		for _, ga := range attrs {
			addAttr(dst, ga)
		}
		return
	}
	target[a.Key] = attrValue(a.Value)
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(TimestampLayout)
	case slog.KindAny:
		switch t := v.Any().(type) {
		case error:
			return stringify(t)
		case Record:
			return cloneRecord(t)
		}
		return v.Any()
	default:
		return v.Any()
	}
}

// encode never fails: values encoding/json rejects are replaced by their
// string form, field by field.
func encode(rec Record) []byte {
	if line, err := marshalLine(rec); err == nil {
		return line
	}

	safe := make(Record, len(rec))
	for k, v := range rec {
		if nested, ok := v.(Record); ok {
			v = sanitize(nested)
		}
		if _, err := marshalLine(v); err != nil {
			v = stringify(v)
		}
		safe[k] = v
	}
	if line, err := marshalLine(safe); err == nil {
		return line
	}

	// Unreachable in practice; keep the fixed fields.
	minimal := Record{}
	for _, k := range []string{KeyMessage, KeyTimestamp, KeyCollectionName, KeyGranuleID, KeyLevel} {
		minimal[k] = stringify(rec[k])
	}
	line, _ := marshalLine(minimal)
	return line
}

func sanitize(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if nested, ok := v.(Record); ok {
			v = sanitize(nested)
		}
		if _, err := marshalLine(v); err != nil {
			v = stringify(v)
		}
		out[k] = v
	}
	return out
}

func marshalLine(v any) (line []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			line, err = nil, fmt.Errorf("marshal panicked: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stringify renders v as message text. Containers become their compact
// JSON form; the placeholder is used only when encoding fails, for
// instance on cycles, channels or funcs.
func stringify(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<unprintable %T>", v)
		}
	}()

	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer, reflect.Struct, reflect.Interface:
		if line, err := marshalLine(v); err == nil {
			return string(bytes.TrimRight(line, "\n"))
		}
		return fmt.Sprintf("<unserializable %T>", v)
	default:
		return fmt.Sprint(v)
	}
}
