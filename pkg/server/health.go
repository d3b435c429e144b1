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
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}

// handleHealth reports liveness. It never consults the logger or Splunk.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.probe(w, r, func() (string, string) { return "healthy", "" })
}

// handleReady is 503 until Serve starts and again once shutdown begins.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.probe(w, r, func() (string, string) {
		if !s.isReady() {
			return "", "relay is not accepting records"
		}
		return "ready", ""
	})
}

func (s *Server) probe(w http.ResponseWriter, r *http.Request, check func() (status, reason string)) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", false, nil)
		return
	}

	status, reason := check()
	code := http.StatusOK
	if reason != "" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	respondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
}
