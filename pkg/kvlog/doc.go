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
Package kvlog builds the key=value log lines read by older pipeline stages.

A line is a sequence of key="value" pairs separated by single spaces:

	process="sync" granule_id="g1" timestamp="2026-01-15T10:30:00.123456" data_pipeline_id="p1" dataset_id="d1" is_error="0"

Caller fields keep their order. The timestamp, data_pipeline_id, dataset_id
and is_error fields are always present; when the caller already supplied one
of them it is overwritten in place, otherwise it is appended.

Values are not escaped. A value containing a double quote produces a line
that key=value parsers will split incorrectly.
*/
package kvlog
