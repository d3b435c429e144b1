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

package kvlog

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Reserved keys written on every line.
const (
	KeyTimestamp      = "timestamp"
	KeyDataPipelineID = "data_pipeline_id"
	KeyDatasetID      = "dataset_id"
	KeyIsError        = "is_error"
)

// Environment variables read by PipelineFromEnv.
const (
	PipelineIDEnvVar = "PIPELINE_ID"
	DatasetIDEnvVar  = "DATASET_ID"
)

// TimestampLayout is local time with microseconds and no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Field is one key="value" pair.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Pipeline identifies the pipeline and dataset a line belongs to.
type Pipeline struct {
	DataPipelineID string `json:"dataPipelineId,omitempty" yaml:"dataPipelineId,omitempty"`
	DatasetID      string `json:"datasetId,omitempty" yaml:"datasetId,omitempty"`
}

// PipelineFromEnv reads PIPELINE_ID and DATASET_ID. Unset variables yield
// empty ids.
func PipelineFromEnv() Pipeline {
	return Pipeline{
		DataPipelineID: os.Getenv(PipelineIDEnvVar),
		DatasetID:      os.Getenv(DatasetIDEnvVar),
	}
}

// Builder renders lines for one pipeline.
type Builder struct {
	Pipeline Pipeline

	// Now defaults to time.Now.
	Now func() time.Time
}

// MakeLogString renders fields for p stamped with the current local time.
func MakeLogString(p Pipeline, isError bool, fields ...Field) string {
	return Builder{Pipeline: p}.Build(isError, fields...)
}

// Build renders fields followed by the reserved fields.
func (b Builder) Build(isError bool, fields ...Field) string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	errFlag := "0"
	if isError {
		errFlag = "1"
	}

	out := make([]Field, 0, len(fields)+4)
	out = append(out, fields...)
	out = set(out, KeyTimestamp, now().Format(TimestampLayout))
	out = set(out, KeyDataPipelineID, b.Pipeline.DataPipelineID)
	out = set(out, KeyDatasetID, b.Pipeline.DatasetID)
	out = set(out, KeyIsError, errFlag)

	var sb strings.Builder
	for i, f := range out {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=\"%v\"", f.Key, f.Value)
	}
	return sb.String()
}

// set overwrites the first field named key, or appends one. Later
// duplicates supplied by the caller are dropped so each key appears once.
func set(fields []Field, key string, value any) []Field {
	idx := -1
	kept := fields[:0]
	for _, f := range fields {
		if f.Key != key {
			kept = append(kept, f)
			continue
		}
		if idx < 0 {
			idx = len(kept)
			kept = append(kept, Field{Key: key, Value: value})
		}
	}
	if idx < 0 {
		kept = append(kept, Field{Key: key, Value: value})
	}
	return kept
}
