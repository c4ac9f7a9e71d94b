package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/employera/internal/flagx"
	"github.com/dmitrijs2005/employera/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// "5m" strings or integer nanoseconds.
type FileConfig struct {
	ListenAddr      string         `json:"listen_addr" yaml:"listen_addr"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey       string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl" yaml:"refresh_token_ttl"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	SeedDemo        bool           `json:"seed_demo" yaml:"seed_demo"`
}

// parseFile overlays cfg with the file named by -c/-config and panics if
// it cannot be read or decoded.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenTTL.Duration > 0 {
		cfg.AccessTokenTTL = fc.AccessTokenTTL.Duration
	}
	if fc.RefreshTokenTTL.Duration > 0 {
		cfg.RefreshTokenTTL = fc.RefreshTokenTTL.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.SeedDemo {
		cfg.SeedDemo = true
	}
}
