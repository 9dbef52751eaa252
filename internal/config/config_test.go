package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
)

func TestNew_ExplicitDir(t *testing.T) {
	cfg, err := config.New("/tmp/custom")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", cfg.Dir)
	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Zero(t, cfg.RequestTimeout)
}

func TestNew_EnvDir(t *testing.T) {
	t.Setenv(config.EnvConfigDir, "/tmp/from-env")
	cfg, err := config.New("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", cfg.Dir)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", config.AppName), config.DefaultConfigDir())
}

func TestLoad_NoSettingsFile(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_SettingsFile(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv("TB_TEST_HOST", "api.example.test")
	dir := t.TempDir()
	yaml := "api_url: https://${TB_TEST_HOST}/v1/\nrequest_timeout: 15s\nlog_level: INFO\nlog_format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(yaml), 0600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test/v1", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("api_url: http://file\n"), 0600))
	t.Setenv(config.EnvAPIURL, "http://env")
	t.Setenv(config.EnvLogLevel, "DEBUG")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("request_timeout: soon\n"), 0600))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_timeout")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("api_url: [unterminated\n"), 0600))

	_, err := config.Load(dir)
	require.Error(t, err)
}

func TestLoad_DotEnvInWorkingDir(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	os.Unsetenv(config.EnvAPIURL)
	require.NoError(t, os.WriteFile(".env", []byte(config.EnvAPIURL+"=http://dotenv\n"), 0600))

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv", cfg.APIURL)
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("BAD-KEY=1\n"), 0600))

	_, err := config.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
