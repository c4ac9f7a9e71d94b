package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/employera/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   listen address (e.g. "127.0.0.1:8000")
//	-d string   PostgreSQL DSN, empty for in-memory accounts
//	-s string   token signing secret
//	-t int      access token lifetime, minutes
//	-r int      refresh token lifetime, minutes
//	-l string   log level
//	-seed       create demo accounts
//
// Lifetimes are given in whole minutes and converted to time.Duration.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-r", "-l", "-seed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	accessTTL := fs.Int("t", int(cfg.AccessTokenTTL.Minutes()), "access token lifetime (in minutes)")
	refreshTTL := fs.Int("r", int(cfg.RefreshTokenTTL.Minutes()), "refresh token lifetime (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.SeedDemo, "seed", cfg.SeedDemo, "create demo accounts")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenTTL = time.Duration(*accessTTL) * time.Minute
	cfg.RefreshTokenTTL = time.Duration(*refreshTTL) * time.Minute
}
