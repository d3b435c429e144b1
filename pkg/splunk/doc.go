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

// Package splunk forwards Cumulus log records to Splunk and queries them back.
//
// # Connection
//
// All calls go to the Splunk management API over HTTPS with basic auth.
// Port defaults to 8089 and index to "main". Certificate verification is
// off, matching how pipeline Splunk instances are deployed.
//
//	client, err := splunk.NewClient(splunk.Config{
//	    Host: "splunk.example.com",
//	    User: "admin",
//	    Pass: os.Getenv("SPLUNK_PASSWORD"),
//	})
//
// # Forwarding
//
// Sink posts each formatted line to /services/receivers/simple in the
// background. Delivery is best effort: no retry, no batching, and records
// are dropped when too many sends are already in flight. Call Flush before
// the process exits.
//
// # Searching
//
// Search posts `search index="<index>" key="value" ...` to the export
// endpoint and returns the "result" object of every response line:
//
//	records, err := client.Search(ctx, []splunk.Filter{{Key: "granuleId", Value: "g1"}})
//
// Filter values are not escaped. Do not pass untrusted input.
package splunk
