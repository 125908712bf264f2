// Package config loads the management console configuration from an optional
// TOML file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognised by Finalize.
const (
	EnvConfigFile         = "MANAGE_CONFIG"
	EnvHTTPAddr           = "MANAGE_HTTP_ADDR"
	EnvBasePath           = "MANAGE_BASE_PATH"
	EnvShutdownTimeout    = "MANAGE_SHUTDOWN_TIMEOUT"
	EnvAPIBaseURL         = "MANAGE_API_BASE_URL"
	EnvAPIToken           = "MANAGE_API_TOKEN"
	EnvSessionHashKey     = "MANAGE_SESSION_HASH_KEY"
	EnvSessionBlockKey    = "MANAGE_SESSION_BLOCK_KEY"
	EnvFirebaseProjectID  = "FIREBASE_PROJECT_ID"
	EnvFirebaseSettingDoc = "MANAGE_SETTINGS_DOC"
	EnvLogLevel           = "LOG_LEVEL"
)

// Config is the root configuration of the console process.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	API      APIConfig      `toml:"api"`
	Session  SessionConfig  `toml:"session"`
	Firebase FirebaseConfig `toml:"firebase"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Address         string `toml:"address"`
	BasePath        string `toml:"base_path"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	CSRFCookieName  string `toml:"csrf_cookie_name"`
	CSRFSecure      bool   `toml:"csrf_secure"`
}

// APIConfig points the console at the REST API that owns the data.
// An empty BaseURL selects the in-memory collaborators.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
	Timeout string `toml:"timeout"`
}

// SessionConfig enables signed cookie sessions when HashKey is set.
type SessionConfig struct {
	HashKey  string `toml:"hash_key"`
	BlockKey string `toml:"block_key"`
	Secure   bool   `toml:"secure"`
}

// FirebaseConfig enables Firebase sign-in and, with SettingsDoc, Firestore-backed settings.
type FirebaseConfig struct {
	ProjectID   string `toml:"project_id"`
	SettingsDoc string `toml:"settings_doc"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Load reads path (when non-empty) and finalizes the result. A missing file is an error
// only when the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies environment overrides, defaults and validation.
func (c *Config) Finalize() error {
	c.loadEnv()
	c.loadDefaults()
	return c.validate()
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// APITimeoutDuration returns the parsed REST client timeout.
func (c *Config) APITimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.API.Timeout)
	return d
}

// UseFirestoreSettings reports whether website settings should be read from Firestore.
func (c *Config) UseFirestoreSettings() bool {
	return c.Firebase.ProjectID != "" && c.Firebase.SettingsDoc != ""
}

func (c *Config) loadEnv() {
	override(&c.Server.Address, EnvHTTPAddr)
	override(&c.Server.BasePath, EnvBasePath)
	override(&c.Server.ShutdownTimeout, EnvShutdownTimeout)
	override(&c.API.BaseURL, EnvAPIBaseURL)
	override(&c.API.Token, EnvAPIToken)
	override(&c.Session.HashKey, EnvSessionHashKey)
	override(&c.Session.BlockKey, EnvSessionBlockKey)
	override(&c.Firebase.ProjectID, EnvFirebaseProjectID)
	override(&c.Firebase.SettingsDoc, EnvFirebaseSettingDoc)
	override(&c.Logging.Level, EnvLogLevel)
}

func (c *Config) loadDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/manage"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.API.Timeout == "" {
		c.API.Timeout = "5s"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	var errs []error
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout: %w", err))
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = append(errs, fmt.Errorf("server.base_path %q must start with /", c.Server.BasePath))
	}
	if c.Session.BlockKey != "" && c.Session.HashKey == "" {
		errs = append(errs, errors.New("session.block_key requires session.hash_key"))
	}
	if n := len(c.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		errs = append(errs, fmt.Errorf("session.block_key must be 16, 24 or 32 bytes, got %d", n))
	}
	if c.Firebase.SettingsDoc != "" && c.Firebase.ProjectID == "" {
		errs = append(errs, errors.New("firebase.settings_doc requires firebase.project_id"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func override(field *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*field = v
	}
}
