package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points the .env lookup at an empty temp dir and clears the
// variables parseEnv reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	orig := dotenvPath
	dotenvPath = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { dotenvPath = orig })

	for _, k := range []string{envAPIURL, envTimeout, envDB, envLogLevel} {
		t.Setenv(k, "")
	}
	if v, ok := os.LookupEnv(envNoColor); ok {
		require.NoError(t, os.Unsetenv(envNoColor))
		t.Cleanup(func() { _ = os.Setenv(envNoColor, v) })
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000/api", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "employera.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.NoColor)
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	isolateEnv(t)

	cfg := load(nil)

	require.NotNil(t, cfg)
	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *cfg)
}

func TestLoad_Precedence(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "http://file:1/api",
		"request_timeout": "20s",
		"database_path": "file.db",
		"log_level": "warn"
	}`), 0o600))

	t.Setenv(envDB, "env.db")
	t.Setenv(envLogLevel, "error")

	cfg := load([]string{"-c", path, "-l", "debug"})

	assert.Equal(t, "http://file:1/api", cfg.APIBaseURL, "file beats default")
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout, "file beats default")
	assert.Equal(t, "env.db", cfg.DatabasePath, "env beats file")
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats env")
}

func TestParseEnv_DotenvFile(t *testing.T) {
	isolateEnv(t)
	require.NoError(t, os.WriteFile(dotenvPath, []byte("EMPLOYERA_API_URL=http://dotenv:9/api\nEMPLOYERA_TIMEOUT=3s\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv(envAPIURL)
		_ = os.Unsetenv(envTimeout)
	})
	// godotenv does not override variables that are already set, even empty ones.
	require.NoError(t, os.Unsetenv(envAPIURL))
	require.NoError(t, os.Unsetenv(envTimeout))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://dotenv:9/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_NoColor(t *testing.T) {
	isolateEnv(t)
	t.Setenv(envNoColor, "1")

	cfg := &Config{}
	parseEnv(cfg)

	assert.True(t, cfg.NoColor)
}

func TestParseEnv_BadTimeoutPanics(t *testing.T) {
	isolateEnv(t)
	t.Setenv(envTimeout, "forever")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
