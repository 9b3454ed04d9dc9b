package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "graphcal.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	assert.Equal(t, "http://localhost:3000/auth/callback", cfg.Auth.RedirectURL)
	assert.Equal(t, 30, cfg.Calendar.SyncDays)
	assert.Equal(t, "Local", cfg.Calendar.Timezone)
	assert.NotEmpty(t, cfg.Storage.DBPath)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":8080"
secure = true

[auth]
client_id = "client-1"
client_secret = "hush"
tenant_id = "contoso"
session_secret = "signing-key"

[calendar]
sync_days = 7
timezone = "Europe/London"

[storage]
db_path = "/tmp/test.db"
`)

	cfg, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Server.Secure)
	assert.Equal(t, "client-1", cfg.Auth.ClientID)
	assert.Equal(t, "contoso", cfg.Auth.TenantID)
	assert.Equal(t, 7, cfg.Calendar.SyncDays)
	assert.Equal(t, "Europe/London", cfg.Calendar.Timezone)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DBPath)

	// Unset file fields keep their defaults.
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
}

func TestLoad_MissingDefaultPath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false)

	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true)

	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `server = not toml`)

	_, err := Load(path, true)

	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[auth]
client_id = "from-file"
`)
	t.Setenv("GRAPHCAL_CLIENT_ID", "from-env")
	t.Setenv("GRAPHCAL_ADDR", ":9090")
	t.Setenv("GRAPHCAL_SYNC_DAYS", "14")
	t.Setenv("GRAPHCAL_SECURE", "true")

	cfg, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.ClientID)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 14, cfg.Calendar.SyncDays)
	assert.True(t, cfg.Server.Secure)
}

func TestLoad_EnvIgnoresUnparseableNumbers(t *testing.T) {
	t.Setenv("GRAPHCAL_SYNC_DAYS", "soon")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false)

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Calendar.SyncDays)
}

func TestValidateForServe(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "complete config passes",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing client id",
			mutate:  func(c *Config) { c.Auth.ClientID = "" },
			wantErr: "client_id",
		},
		{
			name:    "missing client secret",
			mutate:  func(c *Config) { c.Auth.ClientSecret = "" },
			wantErr: "client_secret",
		},
		{
			name:    "missing session secret",
			mutate:  func(c *Config) { c.Auth.SessionSecret = "" },
			wantErr: "session_secret",
		},
		{
			name:    "non-positive sync days",
			mutate:  func(c *Config) { c.Calendar.SyncDays = 0 },
			wantErr: "sync_days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.ClientID = "c"
			cfg.Auth.ClientSecret = "s"
			cfg.Auth.SessionSecret = "k"
			tt.mutate(&cfg)

			err := cfg.ValidateForServe()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	t.Run("named zone", func(t *testing.T) {
		cfg := Default()
		cfg.Calendar.Timezone = "UTC"

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loc)
	})

	t.Run("local fallback", func(t *testing.T) {
		cfg := Default()

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, time.Local, loc)
	})

	t.Run("unknown zone", func(t *testing.T) {
		cfg := Default()
		cfg.Calendar.Timezone = "Mars/Olympus_Mons"

		_, err := cfg.Location()
		assert.Error(t, err)
	})
}
