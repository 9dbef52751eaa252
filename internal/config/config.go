// Package config handles the XDG configuration directory, the optional
// settings file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// DefaultAPIURL is used when nothing else configures the remote API.
	DefaultAPIURL = "http://localhost:5000"
)

// Environment variables consulted by Load.
const (
	EnvConfigDir = "TASKBOARD_CONFIG_DIR"
	EnvAPIURL    = "TASKBOARD_API_URL"
	EnvLogLevel  = "TASKBOARD_LOG_LEVEL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path. Session entries live here.
	Dir string

	// APIURL is the base URL of the remote task API.
	APIURL string

	// RequestTimeout bounds each API call. Zero means no client-side timeout.
	RequestTimeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is text or json.
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// settings mirrors config.yaml.
type settings struct {
	APIURL         string `yaml:"api_url"`
	RequestTimeout string `yaml:"request_timeout"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses TASKBOARD_CONFIG_DIR, then XDG_CONFIG_HOME/taskboard
// or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		APIURL:    DefaultAPIURL,
		LogLevel:  "warn",
		LogFormat: "text",
	}, nil
}

// Load builds a Config the way the CLI does: directory resolution, .env in
// the working directory, config.yaml in the directory, then env overrides.
// A missing .env or config.yaml is not an error.
func Load(configDir string) (*Config, error) {
	// .env never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid .env: %w", err)
	}

	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.readSettings(); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

func (c *Config) readSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	var s settings
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &s); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	if s.APIURL != "" {
		c.APIURL = s.APIURL
	}
	if s.RequestTimeout != "" {
		d, err := time.ParseDuration(s.RequestTimeout)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid request_timeout: %q", s.RequestTimeout)
		}
		c.RequestTimeout = d
	}
	if s.LogLevel != "" {
		c.LogLevel = strings.ToLower(s.LogLevel)
	}
	if s.LogFormat != "" {
		c.LogFormat = strings.ToLower(s.LogFormat)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}
