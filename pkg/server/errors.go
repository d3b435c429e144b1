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
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

// Error codes returned in ErrorResponse.Code, in addition to the
// pkg/errors codes passed through from Splunk failures.
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeNotConfigured     = "NOT_CONFIGURED"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	id := requestID(r.Context())
	if id == "" {
		id = uuid.New().String()
	}

	respondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: id,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// writeStructuredError maps a pkg/errors code to an HTTP status.
func writeStructuredError(w http.ResponseWriter, r *http.Request, err error) {
	code := cerrors.CodeOf(err)

	var status int
	switch code {
	case cerrors.ErrCodeInvalidRequest, cerrors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case cerrors.ErrCodeUpstreamHTTP, cerrors.ErrCodeParse:
		status = http.StatusBadGateway
	case cerrors.ErrCodeUnavailable:
		status = http.StatusServiceUnavailable
	case cerrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	default:
		status, code = http.StatusInternalServerError, ErrCodeInternalError
	}

	var details map[string]any
	var se *cerrors.StructuredError
	if errors.As(err, &se) {
		details = se.Context
	}
	writeError(w, r, status, string(code), err.Error(), cerrors.IsRetryable(err), details)
}

// respondJSON buffers the encoded body so an encoding failure never leaves
// a partial response.
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
		http.Error(w, `{"code":"INTERNAL_ERROR","message":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
