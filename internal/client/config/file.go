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

// FileConfig is the on-disk shape of the config file. Zero values leave the
// corresponding Config field untouched.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	NoColor        bool           `json:"no_color" yaml:"no_color"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors; a missing flag is not an error.
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

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.NoColor {
		cfg.NoColor = true
	}
}
