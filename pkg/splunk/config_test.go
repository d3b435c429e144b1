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

package splunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{Host: "h", User: "u", Pass: "p"}.WithDefaults()
	assert.Equal(t, "8089", cfg.Port)
	assert.Equal(t, "main", cfg.Index)

	custom := Config{Host: "h", Port: "9089", Index: "cumulus"}.WithDefaults()
	assert.Equal(t, "9089", custom.Port)
	assert.Equal(t, "cumulus", custom.Index)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		missing []string
	}{
		{name: "complete", cfg: Config{Host: "h", User: "u", Pass: "p"}},
		{name: "host only", cfg: Config{Host: "h"}, missing: []string{"user", "pass"}},
		{name: "missing host", cfg: Config{User: "u", Pass: "p"}, missing: []string{"host"}},
		{name: "blank host", cfg: Config{Host: "  ", User: "u", Pass: "p"}, missing: []string{"host"}},
		{name: "empty", cfg: Config{}, missing: []string{"host", "user", "pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidConfig))

			var se *cerrors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.missing, se.Context["missing"])
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := Config{Host: "h", Port: "8089", User: "u", Pass: "secret", Index: "main"}
	assert.Equal(t, "u@h:8089/main", cfg.String())
	assert.NotContains(t, cfg.String(), "secret")
}

func TestConfig_BaseURL(t *testing.T) {
	cfg := Config{Host: "splunk.local", Port: "8089"}
	assert.Equal(t, "https://splunk.local:8089", cfg.baseURL())

	v6 := Config{Host: "::1", Port: "8089"}
	assert.Equal(t, "https://[::1]:8089", v6.baseURL())
}
