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

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/serializer"
)

// DotEnvFile is the file name LoadDotEnv searches for.
const DotEnvFile = ".env"

// LoggerConfig describes one logger and its handlers.
type LoggerConfig struct {
	Name           string                `json:"name" yaml:"name"`
	CollectionName string                `json:"collectionName,omitempty" yaml:"collectionName,omitempty"`
	GranuleID      string                `json:"granuleId,omitempty" yaml:"granuleId,omitempty"`
	Stdout         *logging.StdoutConfig `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Splunk         *logging.SplunkConfig `json:"splunk,omitempty" yaml:"splunk,omitempty"`
}

// Options converts the config into GetLogger options.
func (c *LoggerConfig) Options() []logging.LoggerOption {
	if c == nil {
		return nil
	}
	opts := []logging.LoggerOption{
		logging.WithCollectionName(c.CollectionName),
		logging.WithGranuleID(c.GranuleID),
	}
	if c.Stdout != nil {
		opts = append(opts, logging.WithStdout(c.Stdout))
	}
	if c.Splunk != nil {
		opts = append(opts, logging.WithSplunk(c.Splunk))
	}
	return opts
}

// Load reads a logger config from a YAML or JSON file.
func Load(path string) (*LoggerConfig, error) {
	cfg, err := serializer.FromFile[LoggerConfig](path)
	if err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeInvalidConfig, "failed to load logger config", err,
			map[string]any{"path": path})
	}
	return cfg, nil
}

// splunkEnv maps the Splunk environment variables.
type splunkEnv struct {
	Host  string `env:"SPLUNK_HOST"`
	Port  string `env:"SPLUNK_PORT"`
	User  string `env:"SPLUNK_USERNAME"`
	Pass  string `env:"SPLUNK_PASSWORD"`
	Index string `env:"SPLUNK_INDEX"`
	Level string `env:"SPLUNK_LEVEL"`
}

// SplunkFromEnv builds a Splunk handler config from the environment. It
// returns nil when SPLUNK_HOST, SPLUNK_USERNAME or SPLUNK_PASSWORD is unset,
// so the result can be passed straight to logging.WithSplunk.
func SplunkFromEnv() (*logging.SplunkConfig, error) {
	var env splunkEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, "failed to read Splunk environment", err)
	}
	if env.Host == "" || env.User == "" || env.Pass == "" {
		return nil, nil
	}
	return &logging.SplunkConfig{
		Host:  env.Host,
		Port:  env.Port,
		User:  env.User,
		Pass:  env.Pass,
		Index: env.Index,
		Level: env.Level,
	}, nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. An empty path searches the working directory and its
// parents for the nearest .env file; finding none is not an error. It
// returns the file it loaded, or "".
func LoadDotEnv(path string) (string, error) {
	if path == "" {
		found, err := findDotEnv()
		if err != nil || found == "" {
			return "", err
		}
		path = found
	}

	if err := godotenv.Load(path); err != nil {
		return "", cerrors.WrapWithContext(cerrors.ErrCodeInvalidConfig, "failed to load env file", err,
			map[string]any{"path": path})
	}
	slog.Debug("loaded env file", "path", path)
	return path, nil
}

func findDotEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeInternal, "failed to get working directory", err)
	}
	for {
		candidate := filepath.Join(dir, DotEnvFile)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", cerrors.Wrap(cerrors.ErrCodeInternal, "failed to stat env file", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
