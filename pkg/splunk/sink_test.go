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
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

func TestNewClient_RejectsIncompleteConfig(t *testing.T) {
	client, err := NewClient(Config{Host: "h"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidConfig))
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{Host: "h", User: "u", Pass: "p"})
	require.NoError(t, err)
	assert.Equal(t, "8089", client.Config().Port)
	assert.Equal(t, "main", client.Config().Index)
	assert.Equal(t, UserAgent, client.userAgent)

	tr, ok := client.httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestClient_Submit(t *testing.T) {
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	client, err := NewClient(backend.config(t), WithSourceHost("worker-1"), WithUserAgent("test-agent"))
	require.NoError(t, err)

	err = client.Submit(context.Background(), "ingest", []byte(`{"message":"hello"}`))
	require.NoError(t, err)

	reqs := backend.captured()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, "/services/receivers/simple", req.Path)
	assert.Equal(t, "main", req.Query.Get("index"))
	assert.Equal(t, "ingest", req.Query.Get("source"))
	assert.Equal(t, "_json", req.Query.Get("sourcetype"))
	assert.Equal(t, "worker-1", req.Query.Get("host"))
	assert.Equal(t, `{"message":"hello"}`, req.Body)
	assert.Equal(t, "u", req.User)
	assert.Equal(t, "p", req.Pass)
	assert.Equal(t, "test-agent", req.UserAgent)
}

func TestClient_Submit_HTTPError(t *testing.T) {
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "index not found", http.StatusBadRequest)
	})

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	err = client.Submit(context.Background(), "ingest", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeUpstreamHTTP))
}

func TestSink_WriteAndFlush(t *testing.T) {
	var received atomic.Int32
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		received.Add(1)
	})

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	sink := NewSink(client, "granule-ingest", 4)
	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Write(context.Background(), []byte("{\"message\":\"m\"}\n")))
	}

	require.NoError(t, sink.Flush(context.Background()))
	assert.Equal(t, int32(3), received.Load())

	for _, req := range backend.captured() {
		assert.Equal(t, `{"message":"m"}`, req.Body, "trailing newline should be trimmed")
		assert.Equal(t, "granule-ingest", req.Query.Get("source"))
	}
}

func TestSink_CopiesLine(t *testing.T) {
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {})

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	sink := NewSink(client, "src", 1)
	buf := []byte(`{"message":"first"}`)
	require.NoError(t, sink.Write(context.Background(), buf))
	copy(buf, []byte(`{"message":"XXXXX"}`))

	require.NoError(t, sink.Flush(context.Background()))
	reqs := backend.captured()
	require.Len(t, reqs, 1)
	assert.Equal(t, `{"message":"first"}`, reqs[0].Body)
}

func TestSink_SurvivesCanceledContext(t *testing.T) {
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {})

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	sink := NewSink(client, "src", 1)
	require.NoError(t, sink.Write(ctx, []byte(`{}`)))
	cancel()

	require.NoError(t, sink.Flush(context.Background()))
	assert.Len(t, backend.captured(), 1)
}

func TestSink_ReportsErrors(t *testing.T) {
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	var mu sync.Mutex
	var reported []error
	sink := NewSink(client, "src", 2)
	sink.OnError = func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	}

	// Write never surfaces delivery failures.
	require.NoError(t, sink.Write(context.Background(), []byte(`{}`)))
	require.NoError(t, sink.Flush(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reported, 1)
	assert.True(t, cerrors.IsCode(reported[0], cerrors.ErrCodeUpstreamHTTP))
}

func TestSink_DropsWhenSaturated(t *testing.T) {
	release := make(chan struct{})
	var received atomic.Int32
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		received.Add(1)
		<-release
	})

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	sink := NewSink(client, "src", 1)
	require.NoError(t, sink.Write(context.Background(), []byte(`{"n":1}`)))

	// The single slot is busy until release; this write is dropped.
	require.NoError(t, sink.Write(context.Background(), []byte(`{"n":2}`)))

	close(release)
	require.NoError(t, sink.Flush(context.Background()))
	assert.Equal(t, int32(1), received.Load())
}

func TestSink_FlushHonorsContext(t *testing.T) {
	release := make(chan struct{})
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	defer close(release)

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	sink := NewSink(client, "src", 1)
	require.NoError(t, sink.Write(context.Background(), []byte(`{}`)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = sink.Flush(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSink_WriteDoesNotWaitForTimedOutFlush(t *testing.T) {
	release := make(chan struct{})
	var received atomic.Int32
	backend := newStubBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		received.Add(1)
		<-release
	})
	defer close(release)

	client, err := NewClient(backend.config(t))
	require.NoError(t, err)

	sink := NewSink(client, "src", 1)
	require.NoError(t, sink.Write(context.Background(), []byte(`{"n":1}`)))
	require.Eventually(t, func() bool { return received.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, sink.Flush(ctx), context.DeadlineExceeded)

	written := make(chan error, 1)
	go func() { written <- sink.Write(context.Background(), []byte(`{"n":2}`)) }()

	select {
	case err := <-written:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Write blocked behind an unfinished flush")
	}

	// The stuck send still holds its slot in the flushed group; the new
	// write gets a slot of its own.
	assert.Eventually(t, func() bool { return received.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
}
