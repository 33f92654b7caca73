package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "absent.toml"), env(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "hotel_data", cfg.Sheets.SpreadsheetName)
	assert.Equal(t, "Sheet1", cfg.Sheets.Worksheet)
	assert.Equal(t, "credentials.json", cfg.Sheets.CredentialsFile)
	assert.Equal(t, 3, cfg.Bookings.MaxDeleteAttempts)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[storage]
driver = "postgres"

[sheets]
fallback_credentials_file = "/etc/booking/credentials.json"
request_timeout = 5

[bookings]
max_delete_attempts = 5

[database]
host = "db"
user = "booking"
password = "secret"
dbname = "hotel"
`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "/etc/booking/credentials.json", cfg.Sheets.FallbackCredentialsFile)
	assert.Equal(t, 5, cfg.Bookings.MaxDeleteAttempts)
	assert.Equal(t, "postgres://booking:secret@db:5432/hotel?sslmode=disable", cfg.Database.DSN())
}

func TestEnvOverrides(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "absent.toml"), env(map[string]string{
		"HTTP_PORT":                        "7000",
		"PORT":                             "8080",
		"LOG_LEVEL":                        "debug",
		"STORAGE_DRIVER":                   "memory",
		"SHEETS_SPREADSHEET_ID":            "sheet-id",
		"SHEETS_WORKSHEET":                 "Bookings",
		"SHEETS_FALLBACK_CREDENTIALS_FILE": "/run/secrets/google.json",
		"DATABASE_DSN":                     "postgres://u:p@h/db",
		"METRICS_ENABLED":                  "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "sheet-id", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "Bookings", cfg.Sheets.Worksheet)
	assert.Equal(t, "/run/secrets/google.json", cfg.Sheets.FallbackCredentialsFile)
	assert.Equal(t, "postgres://u:p@h/db", cfg.Database.DSN())
	assert.False(t, cfg.Metrics.Enabled)
}

func TestEnvOverrideInvalidValues(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.toml"), env(map[string]string{"PORT": "eighty"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = load(filepath.Join(t.TempDir(), "absent.toml"), env(map[string]string{"METRICS_ENABLED": "maybe"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := load(writeConfig(t, "[server\nhttp_port = "), env(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown driver":      func(c *Config) { c.Storage.Driver = "excel" },
		"port out of range":   func(c *Config) { c.Server.HTTPPort = 70000 },
		"zero timeout":        func(c *Config) { c.Sheets.RequestTimeout = 0 },
		"no spreadsheet":      func(c *Config) { c.Sheets.SpreadsheetName = "" },
		"no worksheet":        func(c *Config) { c.Sheets.Worksheet = "" },
		"zero attempts":       func(c *Config) { c.Bookings.MaxDeleteAttempts = 0 },
		"unknown log level":   func(c *Config) { c.Logs.Level = "loud" },
		"relative metrics":    func(c *Config) { c.Metrics.Path = "metrics" },
		"zero server timeout": func(c *Config) { c.Server.IdleTimeout = 0 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
