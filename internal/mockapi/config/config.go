// Package config handles configuration for the development API server:
// defaults, an optional JSON or YAML file, then command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for cmd/mockapi.
//
// Fields:
//   - ListenAddr: bind address; the client's default API URL points here.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps accounts in memory.
//   - SecretKey: HMAC secret for HS256 tokens. Empty means random per run.
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes.
//   - LogLevel: debug, info, warn or error.
//   - SeedDemo: create one demo account per account type at startup.
type Config struct {
	ListenAddr      string
	DatabaseDSN     string
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	LogLevel        string
	SeedDemo        bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = "127.0.0.1:8000"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.AccessTokenTTL = 5 * time.Minute
	c.RefreshTokenTTL = 24 * time.Hour
	c.LogLevel = "info"
	c.SeedDemo = false
}

// LoadConfig applies defaults, then the config file, then flags.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
