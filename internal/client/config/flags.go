package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/employera/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     API base URL
//	-t duration   request timeout
//	-d string     local state database path
//	-l string     log level
//	-no-color     disable colors
//
// Arguments are filtered through flagx.FilterArgs so -c/-config and any
// positional arguments do not break parsing. Invalid values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l", "-no-color"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the marketplace API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local state database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
