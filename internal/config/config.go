// Package config loads application configuration from a TOML file with
// environment variable overrides. Precedence: defaults, then file, then
// GRAPHCAL_* environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	BaseURL string `toml:"base_url"`
	// Secure marks cookies as HTTPS-only.
	Secure bool `toml:"secure"`
}

// AuthConfig configures the Microsoft app registration.
type AuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TenantID     string `toml:"tenant_id"`
	RedirectURL  string `toml:"redirect_url"`
	// SessionSecret signs the auth cookie.
	SessionSecret string `toml:"session_secret"`
}

// CalendarConfig configures calendar behaviour.
type CalendarConfig struct {
	// SyncDays is the default sync window in days.
	SyncDays int `toml:"sync_days"`
	// Timezone names the IANA zone the calendar is rendered in.
	// "Local" uses the host zone.
	Timezone string `toml:"timezone"`
}

// StorageConfig configures the local snapshot database.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:    ":3000",
			BaseURL: "http://localhost:3000",
		},
		Auth: AuthConfig{
			RedirectURL: "http://localhost:3000/auth/callback",
		},
		Calendar: CalendarConfig{
			SyncDays: 30,
			Timezone: "Local",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// DefaultPath returns the default config file location under the user
// config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "graphcal.toml"
	}
	return dir + "/graphcal/config.toml"
}

// defaultDBPath places the snapshot database under the user config dir.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "graphcal.db"
	}
	return dir + "/graphcal/graphcal.db"
}

// Load builds the configuration. A missing file at the given path is only an
// error when the path was set explicitly; explicit is false for the default
// location.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Defaults plus environment only.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays GRAPHCAL_* environment variables.
func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "GRAPHCAL_ADDR")
	setString(&c.Server.BaseURL, "GRAPHCAL_BASE_URL")
	setBool(&c.Server.Secure, "GRAPHCAL_SECURE")
	setString(&c.Auth.ClientID, "GRAPHCAL_CLIENT_ID")
	setString(&c.Auth.ClientSecret, "GRAPHCAL_CLIENT_SECRET")
	setString(&c.Auth.TenantID, "GRAPHCAL_TENANT_ID")
	setString(&c.Auth.RedirectURL, "GRAPHCAL_REDIRECT_URL")
	setString(&c.Auth.SessionSecret, "GRAPHCAL_SESSION_SECRET")
	setInt(&c.Calendar.SyncDays, "GRAPHCAL_SYNC_DAYS")
	setString(&c.Calendar.Timezone, "GRAPHCAL_TIMEZONE")
	setString(&c.Storage.DBPath, "GRAPHCAL_DB_PATH")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// ValidateForServe checks the fields the HTTP server cannot run without.
func (c *Config) ValidateForServe() error {
	if c.Auth.ClientID == "" {
		return errors.New("auth.client_id is required")
	}
	if c.Auth.ClientSecret == "" {
		return errors.New("auth.client_secret is required")
	}
	if c.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.Calendar.SyncDays <= 0 {
		return errors.New("calendar.sync_days must be positive")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" || c.Calendar.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolve timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}
