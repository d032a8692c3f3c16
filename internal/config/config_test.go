package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Port:            "8080",
		DBPath:          filepath.Join(t.TempDir(), "crm.db"),
		MaxUploadMB:     10,
		ShutdownTimeout: 15 * time.Second,
		LogFormat:       "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{"valid", func(*Config) {}, ""},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port 'abc': must be a number"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port 70000: must be between 1 and 65535"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "database path cannot be empty"},
		{"memory db", func(c *Config) { c.DBPath = ":memory:" }, "database path must be a file"},
		{"upload too large", func(c *Config) { c.MaxUploadMB = 500 }, "invalid max upload 500MB"},
		{"short shutdown", func(c *Config) { c.ShutdownTimeout = 0 }, "invalid shutdown timeout"},
		{"short seed password", func(c *Config) { c.SeedPassword = "abc" }, "seed password must have at least 6 characters"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format 'xml'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig(t)
	cfg.Port = "abc"
	cfg.LogFormat = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "MAX_UPLOAD_MB", "SHUTDOWN_TIMEOUT", "CORS_ALLOWED_ORIGINS", "SEED_PASSWORD"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "crm.db", cfg.DBPath)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	os.Unsetenv("CORS_ALLOWED_ORIGINS")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nCORS_ALLOWED_ORIGINS=http://a.test,http://b.test\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}
