package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the EmployEra CLI.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	NoColor        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "employera.db"
	c.LogLevel = "info"
	c.NoColor = false
}

// LoadConfig builds a Config from defaults, the config file, the
// environment and finally the process flags.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
