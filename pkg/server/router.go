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
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var routes = []string{
	"POST /v1/logs",
	"GET /v1/search",
	"GET /health",
	"GET /ready",
	"GET /metrics",
}

// InfoResponse is returned on the default route.
type InfoResponse struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Ready     bool      `json:"ready"`
	Search    bool      `json:"search"`
	Timestamp time.Time `json:"timestamp"`
	Routes    []string  `json:"routes"`
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("/v1/logs", s.withMiddleware("logs", s.handleLogs))
	mux.HandleFunc("/v1/search", s.withMiddleware("search", s.handleSearch))

	return mux
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	respondJSON(w, http.StatusOK, InfoResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Search:    s.searcher != nil,
		Timestamp: time.Now().UTC(),
		Routes:    routes,
	})
}
