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
	"net"
	"strings"

	"github.com/cumulus-pipeline/cumulus-logging/pkg/defaults"
	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
)

// Config holds the connection parameters for a Splunk instance.
type Config struct {
	Host  string `json:"host" yaml:"host"`
	Port  string `json:"port,omitempty" yaml:"port,omitempty"`
	User  string `json:"user" yaml:"user"`
	Pass  string `json:"pass" yaml:"pass"`
	Index string `json:"index,omitempty" yaml:"index,omitempty"`
}

// WithDefaults returns a copy of c with the default port and index applied
// where they are empty.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.Port) == "" {
		c.Port = defaults.SplunkPort
	}
	if strings.TrimSpace(c.Index) == "" {
		c.Index = defaults.SplunkIndex
	}
	return c
}

// Validate checks that host, user and pass are all present.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "host")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.Pass == "" {
		missing = append(missing, "pass")
	}
	if len(missing) > 0 {
		return cerrors.NewWithContext(cerrors.ErrCodeInvalidConfig,
			"splunk requires host, user, and pass fields",
			map[string]any{"missing": missing})
	}
	return nil
}

// baseURL returns the https origin of the management API.
func (c Config) baseURL() string {
	return "https://" + net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

// String omits the password.
func (c Config) String() string {
	return c.User + "@" + net.JoinHostPort(c.Host, c.Port) + "/" + c.Index
}
