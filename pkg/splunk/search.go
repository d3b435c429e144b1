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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

// maxLineSize bounds a single line of an export response.
const maxLineSize = 16 * 1024 * 1024

var parserPool fastjson.ParserPool

// Filter is one key="value" term appended to a search.
type Filter struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Record is one search result as it was originally ingested.
type Record map[string]any

// BuildSearch returns the search string for index and filters.
// Values are spliced in verbatim, so a value containing a double quote
// changes the meaning of the search.
func BuildSearch(index string, filters []Filter) string {
	var sb strings.Builder
	sb.WriteString(`search index="`)
	sb.WriteString(index)
	sb.WriteByte('"')
	for _, f := range filters {
		sb.WriteByte(' ')
		sb.WriteString(f.Key)
		sb.WriteString(`="`)
		sb.WriteString(f.Value)
		sb.WriteByte('"')
	}
	return sb.String()
}

// Search runs a blocking export search for records matching filters in
// the configured index. There is no pagination and no retry.
func (c *Client) Search(ctx context.Context, filters []Filter) ([]Record, error) {
	start := time.Now()
	records, err := c.search(ctx, filters)
	searchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		searchTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}
	searchTotal.WithLabelValues(statusSuccess).Inc()
	searchResults.Add(float64(len(records)))
	return records, nil
}

func (c *Client) search(ctx context.Context, filters []Filter) ([]Record, error) {
	form := url.Values{}
	form.Set("search", BuildSearch(c.cfg.Index, filters))
	form.Set("output_mode", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.baseURL()+exportPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "failed to create search request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return ParseExport(resp.Body)
}

// Query is a convenience wrapper building a Client for cfg and running a
// single Search.
func Query(ctx context.Context, cfg Config, filters []Filter, options ...Option) ([]Record, error) {
	client, err := NewClient(cfg, options...)
	if err != nil {
		return nil, err
	}
	return client.Search(ctx, filters)
}

// ParseExport reads newline-delimited JSON and collects the "result" value
// of every line that has one. Blank lines and lines without a result are
// skipped. The first malformed line aborts parsing with a PARSE error.
func ParseExport(r io.Reader) ([]Record, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := make([]Record, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		v, err := p.ParseBytes(line)
		if err != nil {
			return nil, cerrors.WrapWithContext(cerrors.ErrCodeParse,
				"malformed search response line", err,
				map[string]any{"line": lineNo})
		}

		result := v.Get("result")
		if result == nil {
			continue
		}

		obj, err := result.Object()
		if err != nil {
			return nil, cerrors.WrapWithContext(cerrors.ErrCodeParse,
				fmt.Sprintf("search result is %s, not an object", result.Type()), err,
				map[string]any{"line": lineNo})
		}
		records = append(records, objectToRecord(obj))
	}

	if err := scanner.Err(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeParse, "failed to read search response", err)
	}

	return records, nil
}

func objectToRecord(o *fastjson.Object) Record {
	rec := make(Record, o.Len())
	o.Visit(func(key []byte, v *fastjson.Value) {
		rec[string(key)] = valueToAny(v)
	})
	return rec
}

// valueToAny copies v out of the parser's arena into plain Go values,
// using the same shapes encoding/json produces.
func valueToAny(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		return map[string]any(objectToRecord(o))
	case fastjson.TypeArray:
		items, _ := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = valueToAny(item)
		}
		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}
