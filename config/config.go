// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/connect-client-go/api"
	"github.com/stacklok/connect-client-go/logging"
	"github.com/stacklok/connect-client-go/oauth"
	"github.com/stacklok/connect-client-go/security"
	httpval "github.com/stacklok/connect-client-go/validation/http"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultCallbackURL is the loopback address the CLI listens on during login.
const DefaultCallbackURL = "http://127.0.0.1:8765/callback"

// Log holds logging settings.
type Log struct {
	// Format is "json" or "text".
	Format string `yaml:"format,omitempty"`
	// Level is a slog level name such as "info" or "debug".
	Level string `yaml:"level,omitempty"`
}

// Config is the client configuration file.
type Config struct {
	Endpoint     string `yaml:"endpoint,omitempty"`
	APIEndpoint  string `yaml:"api_endpoint,omitempty"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret,omitempty"`
	Scope        string `yaml:"scope,omitempty"`
	// StrictChecks is sent to the provider with token requests. Unset means true.
	StrictChecks *bool  `yaml:"strict_checks,omitempty"`
	CallbackURL  string `yaml:"callback_url,omitempty"`
	Log          Log    `yaml:"log,omitempty"`

	// Roles grants roles to the logged-in user. Empty means DefaultRoles.
	Roles []security.Rule `yaml:"roles,omitempty"`
}

// DefaultRoles grants ROLE_CONNECT_USER to everyone who logs in.
var DefaultRoles = []security.Rule{{Role: "ROLE_CONNECT_USER", Expression: "true"}}

// Default returns a configuration pointing at the public Connect service.
func Default() *Config {
	return &Config{
		Endpoint:    oauth.DefaultEndpoint,
		APIEndpoint: api.DefaultEndpoint,
		CallbackURL: DefaultCallbackURL,
		Log:         Log{Format: "text", Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/connect/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "connect", "config.yaml")
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Unknown keys are.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the user
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overrides settings with the CONNECT_* environment variables that
// are set and non-empty.
func (c *Config) ApplyEnv(r EnvReader) error {
	for key, dst := range map[string]*string{
		EnvEndpoint:     &c.Endpoint,
		EnvAPIEndpoint:  &c.APIEndpoint,
		EnvClientID:     &c.ClientID,
		EnvClientSecret: &c.ClientSecret,
		EnvScope:        &c.Scope,
		EnvCallbackURL:  &c.CallbackURL,
		EnvLogLevel:     &c.Log.Level,
	} {
		if v := r.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := r.Getenv(EnvStrictChecks); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvStrictChecks, err)
		}
		c.StrictChecks = &strict
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidConfig)
	}
	if err := httpval.ValidateEndpoint(c.Endpoint); err != nil {
		return fmt.Errorf("%w: endpoint: %w", ErrInvalidConfig, err)
	}
	if err := httpval.ValidateEndpoint(c.APIEndpoint); err != nil {
		return fmt.Errorf("%w: api_endpoint: %w", ErrInvalidConfig, err)
	}
	if c.CallbackURL != "" {
		if err := oauth.ValidateRedirectURI(c.CallbackURL, oauth.RedirectURIPolicyStrict); err != nil {
			return fmt.Errorf("%w: callback_url: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.LogFormat(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	_, err := c.RoleMapper()
	return err
}

// Strict returns the strict flag, defaulting to true.
func (c *Config) Strict() bool {
	return c.StrictChecks == nil || *c.StrictChecks
}

// LogFormat returns the configured log format. Empty means JSON.
func (c *Config) LogFormat() (logging.Format, error) {
	switch strings.ToLower(c.Log.Format) {
	case "", "json":
		return logging.FormatJSON, nil
	case "text":
		return logging.FormatText, nil
	default:
		return 0, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
}

// LogLevel returns the configured log level. Empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// RoleMapper compiles the role rules.
func (c *Config) RoleMapper() (*security.RoleMapper, error) {
	rules := c.Roles
	if len(rules) == 0 {
		rules = DefaultRoles
	}
	m, err := security.NewRoleMapper(rules)
	if err != nil {
		return nil, fmt.Errorf("%w: roles: %w", ErrInvalidConfig, err)
	}
	return m, nil
}

// OAuth returns the consumer settings.
func (c *Config) OAuth() oauth.Config {
	return oauth.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Scope:        c.Scope,
		Endpoint:     c.Endpoint,
	}
}
