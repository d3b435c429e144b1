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

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/splunk"
)

// RecordLogger receives relayed records. *logging.Logger implements it.
type RecordLogger interface {
	Log(ctx context.Context, level slog.Level, raw any)
	Flush(ctx context.Context) error
}

// Searcher runs Splunk searches. *splunk.Client implements it.
type Searcher interface {
	Search(ctx context.Context, filters []splunk.Filter) ([]splunk.Record, error)
}

// Server is the relay HTTP server.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	logger      RecordLogger
	searcher    Searcher

	mu    sync.RWMutex
	ready bool
}

// NewServer creates a server relaying records to logger. A nil searcher
// disables /v1/search. A nil config selects NewConfig.
func NewServer(config *Config, logger RecordLogger, searcher Searcher) *Server {
	if config == nil {
		config = NewConfig()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		logger:      logger,
		searcher:    searcher,
	}

	s.httpServer = &http.Server{
		Addr:              config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
	}

	return s
}

// Handler returns the routed handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully and flushes the logger.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.SetReady(true)
	slog.Info("server listening", "address", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Start listens on the configured address and serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Shutdown stops accepting requests, waits for active ones and then for
// in-flight Splunk sends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)

	if s.logger != nil {
		flushCtx, flushCancel := context.WithTimeout(ctx, s.config.FlushTimeout)
		defer flushCancel()
		if flushErr := s.logger.Flush(flushCtx); flushErr != nil {
			err = errors.Join(err, fmt.Errorf("flush: %w", flushErr))
		}
	}

	if err == nil {
		slog.Info("server stopped gracefully")
	}
	return err
}
