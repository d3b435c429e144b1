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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/splunk"
)

// AcceptedResponse is returned by /v1/logs.
type AcceptedResponse struct {
	Accepted  int    `json:"accepted"`
	Level     string `json:"level"`
	RequestID string `json:"requestId"`
}

// SearchResponse is returned by /v1/search.
type SearchResponse struct {
	Count   int             `json:"count"`
	Results []splunk.Record `json:"results"`
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", false, nil)
		return
	}

	level := logging.LevelInfo
	if name := r.URL.Query().Get("level"); name != "" {
		parsed, err := logging.ParseLevel(name)
		if err != nil {
			writeStructuredError(w, r, err)
			return
		}
		level = parsed
	}

	records, err := decodeRecords(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(cerrors.ErrCodeInvalidRequest),
				"Request body too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		writeStructuredError(w, r, err)
		return
	}

	levelName := logging.LevelName(level)
	for _, rec := range records {
		s.logger.Log(r.Context(), level, rec)
		relayedRecords.WithLabelValues(levelName).Inc()
	}

	respondJSON(w, http.StatusAccepted, AcceptedResponse{
		Accepted:  len(records),
		Level:     levelName,
		RequestID: requestID(r.Context()),
	})
}

// decodeRecords accepts a JSON string, an object, or an array of either.
func decodeRecords(body io.Reader) ([]any, error) {
	var payload any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "request body is not valid JSON", err)
	}

	var records []any
	switch v := payload.(type) {
	case string, map[string]any:
		records = []any{v}
	case []any:
		for i, item := range v {
			switch item.(type) {
			case string, map[string]any:
			default:
				return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
					"records must be strings or objects", map[string]any{"index": i})
			}
		}
		records = v
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "body must be a string, an object or an array")
	}
	return records, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", false, nil)
		return
	}
	if s.searcher == nil {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeNotConfigured, "Search is not configured", false, nil)
		return
	}

	filters, err := parseFilters(r.URL.Query()["filter"])
	if err != nil {
		writeStructuredError(w, r, err)
		return
	}

	records, err := s.searcher.Search(r.Context(), filters)
	if err != nil {
		writeStructuredError(w, r, err)
		return
	}
	if records == nil {
		records = []splunk.Record{}
	}

	respondJSON(w, http.StatusOK, SearchResponse{
		Count:   len(records),
		Results: records,
	})
}

// parseFilters reads key=value terms, keeping their order.
func parseFilters(terms []string) ([]splunk.Filter, error) {
	filters := make([]splunk.Filter, 0, len(terms))
	for _, term := range terms {
		k, v, ok := strings.Cut(term, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid filter %q, expected key=value", term))
		}
		filters = append(filters, splunk.Filter{Key: strings.TrimSpace(k), Value: v})
	}
	return filters, nil
}
