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

// Package config assembles logger configuration from files, the process
// environment and .env files.
//
// A logger file names the handlers to attach:
//
//	name: ingest
//	collectionName: MOD09GQ
//	stdout:
//	  level: INFO
//	splunk:
//	  host: splunk.example.com
//	  user: svc
//	  pass: secret
//	  level: ERROR
//
// Splunk settings can instead come from SPLUNK_HOST, SPLUNK_PORT,
// SPLUNK_USERNAME, SPLUNK_PASSWORD, SPLUNK_INDEX and SPLUNK_LEVEL. Nothing
// is read at import time; callers ask for it.
package config
