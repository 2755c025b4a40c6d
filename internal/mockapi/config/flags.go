package config

import (
	"flag"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   bind address (e.g. ":8081")
//	-s bool     load the sample users (use -s=false to start empty)
//	-l string   log level
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-a", "-s", "-l"})

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address")
	fs.BoolVar(&cfg.Seed, "s", cfg.Seed, "load the sample users")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}
}
