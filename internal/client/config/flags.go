package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote user service
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are considered (see flagx.FilterArgs), so -c/-e and
// flags of other components do not interfere.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-a", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the remote user service")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	if isSet(fs, "t") {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
