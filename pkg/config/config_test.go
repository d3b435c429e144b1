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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/cumulus-pipeline/cumulus-logging/pkg/errors"
	"github.com/cumulus-pipeline/cumulus-logging/pkg/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		prev, had := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, prev)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "logger.yaml", `
name: ingest
collectionName: MOD09GQ
granuleId: g1
stdout:
  level: INFO
splunk:
  host: splunk.example.com
  user: svc
  pass: secret
  level: ERROR
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ingest", cfg.Name)
	assert.Equal(t, "MOD09GQ", cfg.CollectionName)
	assert.Equal(t, "g1", cfg.GranuleID)
	require.NotNil(t, cfg.Stdout)
	assert.Equal(t, "INFO", cfg.Stdout.Level)
	require.NotNil(t, cfg.Splunk)
	assert.Equal(t, logging.SplunkConfig{Host: "splunk.example.com", User: "svc", Pass: "secret", Level: "ERROR"}, *cfg.Splunk)
	assert.Len(t, cfg.Options(), 4)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "logger.json", `{"name":"publish","stdout":{}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "publish", cfg.Name)
	assert.NotNil(t, cfg.Stdout)
	assert.Nil(t, cfg.Splunk)
	assert.Len(t, cfg.Options(), 3)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidConfig))

	bad := writeFile(t, dir, "bad.json", `{"name":`)
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidConfig))
}

func TestLoggerConfig_OptionsDriveRegistry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "logger.yaml", "name: x\nstdout:\n  level: INFO\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	reg := logging.NewRegistry()
	l, err := reg.GetLogger(cfg.Name, cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"stdout"}, l.Sinks())

	var nilCfg *LoggerConfig
	assert.Nil(t, nilCfg.Options())
}

func TestSplunkFromEnv(t *testing.T) {
	t.Setenv("SPLUNK_HOST", "splunk.local")
	t.Setenv("SPLUNK_PORT", "9089")
	t.Setenv("SPLUNK_USERNAME", "admin")
	t.Setenv("SPLUNK_PASSWORD", "changeme")
	t.Setenv("SPLUNK_INDEX", "cumulus")
	t.Setenv("SPLUNK_LEVEL", "WARNING")

	cfg, err := SplunkFromEnv()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, logging.SplunkConfig{
		Host:  "splunk.local",
		Port:  "9089",
		User:  "admin",
		Pass:  "changeme",
		Index: "cumulus",
		Level: "WARNING",
	}, *cfg)
}

func TestSplunkFromEnv_Incomplete(t *testing.T) {
	unsetEnv(t, "SPLUNK_HOST", "SPLUNK_PORT", "SPLUNK_USERNAME", "SPLUNK_PASSWORD", "SPLUNK_INDEX", "SPLUNK_LEVEL")
	t.Setenv("SPLUNK_HOST", "splunk.local")
	t.Setenv("SPLUNK_USERNAME", "admin")

	cfg, err := SplunkFromEnv()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadDotEnv_ExplicitPath(t *testing.T) {
	unsetEnv(t, "CUMULUS_TEST_DOTENV", "CUMULUS_TEST_PRESET")
	t.Setenv("CUMULUS_TEST_PRESET", "kept")

	path := writeFile(t, t.TempDir(), "custom.env", "CUMULUS_TEST_DOTENV=loaded\nCUMULUS_TEST_PRESET=overridden\n")

	loaded, err := LoadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "loaded", os.Getenv("CUMULUS_TEST_DOTENV"))
	assert.Equal(t, "kept", os.Getenv("CUMULUS_TEST_PRESET"), "existing variables are not overridden")
}

func TestLoadDotEnv_SearchesParents(t *testing.T) {
	unsetEnv(t, "CUMULUS_TEST_PARENT")

	root := t.TempDir()
	want := writeFile(t, root, DotEnvFile, "CUMULUS_TEST_PARENT=yes\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	loaded, err := LoadDotEnv("")
	require.NoError(t, err)

	wantResolved, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(loaded)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, gotResolved)
	assert.Equal(t, "yes", os.Getenv("CUMULUS_TEST_PARENT"))
}

func TestLoadDotEnv_MissingExplicitFile(t *testing.T) {
	_, err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidConfig))
}
