package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Setenv("HF_TEST_TOKEN", "abc")
	path := writeConfig(t, `
[server]
port = 9000
refresh_interval = "2m"

[jellyfin]
url = "http://jf.local:8096"
token = "${HF_TEST_TOKEN}"
user_id = "u1"

[home]
include_libraries = true
latest_limit = 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.RefreshInterval.Duration)
	assert.Equal(t, "abc", cfg.Jellyfin.Token)
	assert.True(t, cfg.Home.IncludeLibraries)
	assert.Equal(t, 20, cfg.Home.LatestLimit)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[jellyfin]
url = "https://jf.example.com"
username = "alice"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.Server.RefreshInterval.Duration)
	assert.Equal(t, "./data/offline.db", cfg.Offline.Database)
	assert.Equal(t, 12, cfg.Home.ResumeLimit)
	assert.Equal(t, 12, cfg.Home.NextUpLimit)
	assert.Equal(t, 16, cfg.Home.LatestLimit)
	assert.Equal(t, "0.0.0.0:8585", cfg.Addr())
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[jellyfin]
url = "http://localhost:8096"
token = "${HOMEFEED_MISSING_KEY}"
user_id = "u1"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"HOMEFEED_MISSING_KEY"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "HOMEFEED_MISSING_KEY")
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[server]
log_level = "verbose"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.log_level")
	assert.Contains(t, err.Error(), "jellyfin.url: required")
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nport = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
refresh_interval = "soon"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
