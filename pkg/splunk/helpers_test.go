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
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// capturedRequest is what a stub backend saw.
type capturedRequest struct {
	Method    string
	Path      string
	Query     url.Values
	Form      url.Values
	Body      string
	User      string
	Pass      string
	RequestID string
	UserAgent string
}

// stubBackend is a TLS server standing in for Splunk.
type stubBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newStubBackend(t *testing.T, handler http.HandlerFunc) *stubBackend {
	t.Helper()
	b := &stubBackend{}
	b.Server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		user, pass, _ := r.BasicAuth()
		form, _ := url.ParseQuery(string(body))
		b.mu.Lock()
		b.requests = append(b.requests, capturedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			Form:      form,
			Body:      string(body),
			User:      user,
			Pass:      pass,
			RequestID: r.Header.Get(RequestIDHeader),
			UserAgent: r.UserAgent(),
		})
		b.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *stubBackend) config(t *testing.T) Config {
	t.Helper()
	u, err := url.Parse(b.URL)
	if err != nil {
		t.Fatalf("failed to parse stub url: %v", err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("failed to split stub host: %v", err)
	}
	return Config{Host: host, Port: port, User: "u", Pass: "p", Index: "main"}
}

func (b *stubBackend) captured() []capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]capturedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}
