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

// Package serializer renders command output and reads configuration files.
//
// Three output formats are supported:
//   - JSON: indented, machine-readable
//   - YAML: human-readable configuration format
//   - Table: aligned columns; a list of records gets one row per record
//     and one column per key, anything else is flattened into FIELD/VALUE
//     rows
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, records); err != nil {
//		return err
//	}
//
// Reading a configuration file, format taken from the extension:
//
//	cfg, err := serializer.FromFile[config.LoggerConfig]("logger.yaml")
package serializer
