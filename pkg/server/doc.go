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

/*
Package server implements the log relay: an HTTP front end that accepts
records for a configured Cumulus logger and proxies searches to Splunk.

# Endpoints

	POST /v1/logs?level=ERROR   body: a JSON string, object, or array of either
	GET  /v1/search?filter=k=v  repeated filters, in order
	GET  /health                liveness
	GET  /ready                 readiness, false while shutting down
	GET  /metrics               Prometheus metrics
	GET  /                      service info and routes

Records accepted on /v1/logs go through the same formatter and handlers as
records emitted in process: they are decorated with timestamp,
collectionName, granuleId and level, and forwarded without waiting for
Splunk. The response is 202 Accepted once the record has been handed to the
handlers.

# Middleware

/v1 routes run through, outermost first: metrics, request ID, panic
recovery, rate limiting and request logging. Request IDs are taken from a
valid X-Request-Id UUID header or generated. Rejected requests get
429 with a Retry-After header.

# Errors

Errors are JSON:

	{"code":"RATE_LIMIT_EXCEEDED","message":"...","requestId":"...","timestamp":"...","retryable":true}

Search failures map to 502 (Splunk error or unparseable response),
503 (Splunk unreachable or search not configured) and 504 (timeout).
*/
package server
