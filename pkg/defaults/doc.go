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

// Package defaults provides centralized configuration constants for the
// Cumulus logging packages.
//
// # Categories
//
//   - Splunk defaults: port, index and sourcetype applied when a config omits them
//   - Sink limits: in-flight send bound and flush timeout for remote forwarding
//   - HTTP client timeouts: for outbound requests to Splunk
//   - CLI timeouts: for the cumulus-log commands
//   - Relay server: port, HTTP timeouts, rate limit and request body limit
//
// Timeouts are defaults only. Callers that need different bounds configure
// them on the HTTP client or pass a context with a deadline.
package defaults
