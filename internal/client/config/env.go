package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL   = "EMPLOYERA_API_URL"
	envTimeout  = "EMPLOYERA_TIMEOUT"
	envDB       = "EMPLOYERA_DB"
	envLogLevel = "EMPLOYERA_LOG_LEVEL"
	envNoColor  = "NO_COLOR"
)

// dotenvPath is a test seam.
var dotenvPath = ".env"

// parseEnv loads .env (variables already set in the process win) and then
// overlays cfg with EMPLOYERA_* values. A malformed timeout panics.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v := os.Getenv(envAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(envDB); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if _, ok := os.LookupEnv(envNoColor); ok {
		cfg.NoColor = true
	}
}
